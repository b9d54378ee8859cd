package domain

import (
	"context"
	"time"
)

// IngredientStore supplies the canonical ingredient catalog.
// Implementations must return records in a stable, documented order and must
// surface failures rather than returning an empty list.
type IngredientStore interface {
	ListIngredients(ctx context.Context) ([]CanonicalIngredient, error)
}

// ResolutionCache memoizes name resolutions keyed by threshold and normalized name.
type ResolutionCache interface {
	Get(ctx context.Context, key string) (Resolution, error)
	Set(ctx context.Context, key string, value Resolution, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
