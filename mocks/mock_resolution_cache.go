package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Amaru333/cci-hackathon-2025-backend/internal/domain"
)

// MockResolutionCache is a mock implementation of domain.ResolutionCache.
type MockResolutionCache struct {
	mock.Mock
}

func (m *MockResolutionCache) Get(ctx context.Context, key string) (domain.Resolution, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(domain.Resolution), args.Error(1)
}

func (m *MockResolutionCache) Set(ctx context.Context, key string, value domain.Resolution, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockResolutionCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockResolutionCache) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
