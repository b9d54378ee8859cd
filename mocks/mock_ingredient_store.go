package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Amaru333/cci-hackathon-2025-backend/internal/domain"
)

// MockIngredientStore is a mock implementation of domain.IngredientStore.
type MockIngredientStore struct {
	mock.Mock
}

func (m *MockIngredientStore) ListIngredients(ctx context.Context) ([]domain.CanonicalIngredient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CanonicalIngredient), args.Error(1)
}
