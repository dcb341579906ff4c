package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/repositories"
)

type RegistrationRepository struct {
	mock.Mock
}

func (r *RegistrationRepository) GetLatestRegistration(ctx context.Context,
	exec repositories.Executor, registrantId string, regType *models.RegistrationType,
) (models.Registration, error) {
	args := r.Called(ctx, exec, registrantId, regType)
	return args.Get(0).(models.Registration), args.Error(1)
}
