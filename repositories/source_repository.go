package repositories

import (
	"context"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/repositories/dbmodels"

	"github.com/google/uuid"
)

type SourceRepository interface {
	GetSourceById(ctx context.Context, exec Executor, sourceId uuid.UUID) (models.Source, error)
}

type SourceRepositoryPostgresql struct{}

func (repo *SourceRepositoryPostgresql) GetSourceById(ctx context.Context, exec Executor,
	sourceId uuid.UUID,
) (models.Source, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectSourceColumns...).
			From(dbmodels.TABLE_SOURCES).
			Where("id = ?", sourceId),
		dbmodels.AdaptSource,
	)
}
