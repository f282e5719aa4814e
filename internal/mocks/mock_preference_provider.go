package mocks

import (
	"context"

	"github.com/cinegood/purchase-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPreferenceProvider struct {
	mock.Mock
	domain.PreferenceProvider
}

func (m *MockPreferenceProvider) CreatePreference(ctx context.Context, req domain.PreferenceRequest) (*domain.Preference, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Preference), args.Error(1)
}
