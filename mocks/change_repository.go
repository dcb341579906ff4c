package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/repositories"
)

type ChangeRepository struct {
	mock.Mock
}

func (r *ChangeRepository) GetChangeById(ctx context.Context, exec repositories.Executor,
	changeId uuid.UUID,
) (models.Change, error) {
	args := r.Called(ctx, exec, changeId)
	return args.Get(0).(models.Change), args.Error(1)
}

func (r *ChangeRepository) CreateChange(ctx context.Context, exec repositories.Executor,
	changeId uuid.UUID, input models.CreateChangeInput,
) error {
	args := r.Called(ctx, exec, changeId, input)
	return args.Error(0)
}

func (r *ChangeRepository) UpdateChange(ctx context.Context, exec repositories.Executor,
	input models.UpdateChangeInput,
) error {
	args := r.Called(ctx, exec, input)
	return args.Error(0)
}
