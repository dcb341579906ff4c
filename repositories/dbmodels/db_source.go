package dbmodels

import (
	"time"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/utils"

	"github.com/google/uuid"
)

type DBSource struct {
	Id        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Authority string    `db:"authority"`
	CreatedAt time.Time `db:"created_at"`
}

const TABLE_SOURCES = "sources"

var SelectSourceColumns = utils.ColumnList[DBSource]()

func AdaptSource(db DBSource) (models.Source, error) {
	return models.Source{
		Id:        db.Id,
		Name:      db.Name,
		Authority: models.SourceAuthority(db.Authority),
		CreatedAt: db.CreatedAt,
	}, nil
}
