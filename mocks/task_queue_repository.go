package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/momconnect/hub/repositories"
)

type TaskQueueRepository struct {
	mock.Mock
}

func (r *TaskQueueRepository) EnqueueChangeValidateImplementTask(ctx context.Context,
	tx repositories.Transaction, changeId uuid.UUID,
) error {
	args := r.Called(ctx, tx, changeId)
	return args.Error(0)
}
