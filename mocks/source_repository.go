package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/repositories"
)

type SourceRepository struct {
	mock.Mock
}

func (r *SourceRepository) GetSourceById(ctx context.Context, exec repositories.Executor,
	sourceId uuid.UUID,
) (models.Source, error) {
	args := r.Called(ctx, exec, sourceId)
	return args.Get(0).(models.Source), args.Error(1)
}
