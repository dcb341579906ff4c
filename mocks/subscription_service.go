package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/momconnect/hub/models"
)

type SubscriptionService struct {
	mock.Mock
}

func (s *SubscriptionService) ListActiveSubscriptions(ctx context.Context,
	registrantId string,
) ([]models.Subscription, error) {
	args := s.Called(ctx, registrantId)
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (s *SubscriptionService) ListActiveSubscriptionsByMessageset(ctx context.Context,
	registrantId string, messagesetId int,
) ([]models.Subscription, error) {
	args := s.Called(ctx, registrantId, messagesetId)
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (s *SubscriptionService) DeactivateSubscription(ctx context.Context,
	subscriptionId string,
) error {
	args := s.Called(ctx, subscriptionId)
	return args.Error(0)
}

func (s *SubscriptionService) GetMessageset(ctx context.Context,
	messagesetId int,
) (models.MessageSet, error) {
	args := s.Called(ctx, messagesetId)
	return args.Get(0).(models.MessageSet), args.Error(1)
}

func (s *SubscriptionService) GetMessagesetByShortname(ctx context.Context,
	shortName string,
) (models.MessageSet, error) {
	args := s.Called(ctx, shortName)
	return args.Get(0).(models.MessageSet), args.Error(1)
}

func (s *SubscriptionService) GetSchedule(ctx context.Context,
	scheduleId int,
) (models.Schedule, error) {
	args := s.Called(ctx, scheduleId)
	return args.Get(0).(models.Schedule), args.Error(1)
}
