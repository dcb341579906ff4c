package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/repositories"
)

type SubscriptionRequestRepository struct {
	mock.Mock
}

func (r *SubscriptionRequestRepository) CreateSubscriptionRequest(ctx context.Context,
	exec repositories.Executor, input models.CreateSubscriptionRequestInput,
) error {
	args := r.Called(ctx, exec, input)
	return args.Error(0)
}

func (r *SubscriptionRequestRepository) ListSubscriptionRequests(ctx context.Context,
	exec repositories.Executor, registrantId string,
) ([]models.SubscriptionRequest, error) {
	args := r.Called(ctx, exec, registrantId)
	return args.Get(0).([]models.SubscriptionRequest), args.Error(1)
}
