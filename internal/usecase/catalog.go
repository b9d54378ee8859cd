package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Amaru333/cci-hackathon-2025-backend/internal/domain"
)

const (
	catalogLoadKey = "catalog"

	// DefaultCatalogLoadTimeout bounds a single catalog fetch.
	DefaultCatalogLoadTimeout = 2 * time.Minute
)

// InventoryCatalog lazily loads the canonical ingredient names from a store and
// keeps them for the lifetime of the process.
//
// Concurrent first callers share a single fetch. The fetch is detached from the
// cancellation of whichever caller started it and is bounded by loadTimeout
// instead; each caller stops waiting when its own context ends. A failed fetch
// caches nothing, so a later call retries. Once loaded the snapshot is never
// refreshed.
type InventoryCatalog struct {
	store  domain.IngredientStore
	logger *slog.Logger

	loadTimeout time.Duration

	group singleflight.Group
	names atomic.Pointer[[]string]
}

// NewInventoryCatalog creates a catalog backed by store
func NewInventoryCatalog(store domain.IngredientStore, logger *slog.Logger) *InventoryCatalog {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &InventoryCatalog{
		store:       store,
		logger:      logger,
		loadTimeout: DefaultCatalogLoadTimeout,
	}
}

// Names returns the trimmed lowercase canonical names in store retrieval order.
// Blank names are skipped.
// The returned slice is shared and must not be modified.
func (c *InventoryCatalog) Names(ctx context.Context) ([]string, error) {
	if names := c.names.Load(); names != nil {
		return *names, nil
	}

	ch := c.group.DoChan(catalogLoadKey, func() (interface{}, error) {
		// a previous flight may have finished between the check above and DoChan
		if names := c.names.Load(); names != nil {
			return *names, nil
		}
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()
		return c.load(loadCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]string), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, ctx.Err())
	}
}

// Loaded reports whether the snapshot has been populated.
func (c *InventoryCatalog) Loaded() bool {
	return c.names.Load() != nil
}

func (c *InventoryCatalog) load(ctx context.Context) ([]string, error) {
	start := time.Now()

	ingredients, err := c.store.ListIngredients(ctx)
	if err != nil {
		c.logger.Error("failed to load ingredient catalog", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	names := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		name := strings.ToLower(strings.TrimSpace(ingredient.Name))
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	c.names.Store(&names)

	if len(names) == 0 {
		c.logger.Warn("ingredient catalog is empty; no item will be standardized")
	}
	c.logger.Info("loaded ingredient catalog",
		"entries", len(names),
		"duration", time.Since(start),
	)

	return names, nil
}
