package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/guregu/null/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type DBChange struct {
	Id           uuid.UUID   `db:"id"`
	RegistrantId string      `db:"registrant_id"`
	Action       string      `db:"action"`
	Data         []byte      `db:"data"`
	Validated    bool        `db:"validated"`
	SourceId     uuid.UUID   `db:"source_id"`
	CreatedBy    pgtype.Text `db:"created_by"`
	UpdatedBy    pgtype.Text `db:"updated_by"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

const TABLE_CHANGES = "changes"

var SelectChangeColumns = utils.ColumnList[DBChange]()

func AdaptChange(db DBChange) (models.Change, error) {
	change := models.Change{
		Id:           db.Id,
		RegistrantId: db.RegistrantId,
		Action:       models.ChangeAction(db.Action),
		Data:         map[string]any{},
		Validated:    db.Validated,
		SourceId:     db.SourceId,
		CreatedAt:    db.CreatedAt,
		UpdatedAt:    db.UpdatedAt,
	}

	if len(db.Data) > 0 {
		if err := json.Unmarshal(db.Data, &change.Data); err != nil {
			return models.Change{}, errors.Wrap(err, "unable to unmarshal change data")
		}
	}

	if db.CreatedBy.Valid {
		change.CreatedBy = null.StringFrom(db.CreatedBy.String)
	}
	if db.UpdatedBy.Valid {
		change.UpdatedBy = null.StringFrom(db.UpdatedBy.String)
	}

	return change, nil
}
