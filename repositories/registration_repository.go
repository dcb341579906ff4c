package repositories

import (
	"context"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/repositories/dbmodels"
)

type RegistrationRepository interface {
	GetLatestRegistration(ctx context.Context, exec Executor, registrantId string,
		regType *models.RegistrationType) (models.Registration, error)
}

type RegistrationRepositoryPostgresql struct{}

// GetLatestRegistration returns the registrant's most recent validated
// registration, optionally restricted to one registration type. Returns a
// NotFoundError when the registrant was never registered.
func (repo *RegistrationRepositoryPostgresql) GetLatestRegistration(ctx context.Context,
	exec Executor, registrantId string, regType *models.RegistrationType,
) (models.Registration, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectRegistrationColumns...).
		From(dbmodels.TABLE_REGISTRATIONS).
		Where("registrant_id = ?", registrantId).
		OrderBy("created_at DESC").
		Limit(1)

	if regType != nil {
		query = query.Where("reg_type = ?", string(*regType))
	}

	return SqlToModel(ctx, exec, query, dbmodels.AdaptRegistration)
}
