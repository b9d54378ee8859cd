// Package app wires configuration into a ready standardization service.
package app

import (
	"context"
	"log/slog"

	"github.com/Amaru333/cci-hackathon-2025-backend/config"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/domain"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/infrastructure/cache"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/infrastructure/store"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/usecase"
)

// Components is the assembled application graph.
type Components struct {
	Store   domain.IngredientStore
	Catalog *usecase.InventoryCatalog
	Service *usecase.StandardizationService
	Cache   *cache.MemoryCache // nil when caching is disabled

	closeStore func() error
}

// Close releases the store connection and stops the cache sweeper.
func (c *Components) Close() error {
	if c.Cache != nil {
		c.Cache.Close()
	}
	return c.closeStore()
}

// Build opens the configured ingredient store and assembles the catalog,
// resolution cache and standardization service on top of it. The catalog is
// not loaded until first use.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ingredientStore, closeStore, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	c := &Components{
		Store:      ingredientStore,
		Catalog:    usecase.NewInventoryCatalog(ingredientStore, logger),
		closeStore: closeStore,
	}

	var resolutionCache domain.ResolutionCache
	if cfg.Matching.EnableCache {
		c.Cache = cache.NewMemoryCache(0)
		resolutionCache = c.Cache
	}

	c.Service = usecase.NewStandardizationService(
		c.Catalog,
		resolutionCache,
		usecase.StandardizationConfig{
			Threshold:          cfg.Matching.Threshold,
			CacheTTL:           cfg.Matching.CacheTTL,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
		logger,
	)

	logger.Info("standardization service ready",
		"catalog_source", cfg.Catalog.Source,
		"threshold", c.Service.Threshold(),
		"cache", cfg.Matching.EnableCache,
	)
	return c, nil
}
