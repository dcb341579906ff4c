package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type IdentityService struct {
	mock.Mock
}

func (s *IdentityService) UpdateIdentityDetails(ctx context.Context, identityId string,
	details map[string]any,
) error {
	args := s.Called(ctx, identityId, details)
	return args.Error(0)
}
