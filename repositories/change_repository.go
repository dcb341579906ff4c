package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/repositories/dbmodels"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type ChangeRepository interface {
	GetChangeById(ctx context.Context, exec Executor, changeId uuid.UUID) (models.Change, error)
	CreateChange(ctx context.Context, exec Executor, changeId uuid.UUID, input models.CreateChangeInput) error
	UpdateChange(ctx context.Context, exec Executor, input models.UpdateChangeInput) error
}

type ChangeRepositoryPostgresql struct{}

func (repo *ChangeRepositoryPostgresql) GetChangeById(ctx context.Context, exec Executor,
	changeId uuid.UUID,
) (models.Change, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectChangeColumns...).
			From(dbmodels.TABLE_CHANGES).
			Where("id = ?", changeId),
		dbmodels.AdaptChange,
	)
}

func (repo *ChangeRepositoryPostgresql) CreateChange(ctx context.Context, exec Executor,
	changeId uuid.UUID, input models.CreateChangeInput,
) error {
	data, err := json.Marshal(input.Data)
	if err != nil {
		return errors.Wrap(err, "unable to marshal change data")
	}

	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Insert(dbmodels.TABLE_CHANGES).
			Columns(
				"id",
				"registrant_id",
				"action",
				"data",
				"validated",
				"source_id",
				"created_by",
			).
			Values(
				changeId,
				input.RegistrantId,
				string(input.Action),
				data,
				false,
				input.SourceId,
				input.CreatedBy,
			),
	)
}

func (repo *ChangeRepositoryPostgresql) UpdateChange(ctx context.Context, exec Executor,
	input models.UpdateChangeInput,
) error {
	data, err := json.Marshal(input.Data)
	if err != nil {
		return errors.Wrap(err, "unable to marshal change data")
	}

	query := NewQueryBuilder().
		Update(dbmodels.TABLE_CHANGES).
		Set("data", data).
		Set("validated", input.Validated).
		Set("updated_at", time.Now()).
		Where("id = ?", input.Id)

	if input.UpdatedBy != "" {
		query = query.Set("updated_by", input.UpdatedBy)
	}

	return ExecBuilder(ctx, exec, query)
}
