// Package store selects the configured ingredient catalog backend.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Amaru333/cci-hackathon-2025-backend/config"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/domain"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/infrastructure/ingredientapi"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/infrastructure/store/file"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/infrastructure/store/postgres"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/infrastructure/store/sqlite"
)

// Open builds the ingredient store named by cfg.Catalog.Source. The returned
// close function releases any connection the store holds and is never nil.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.IngredientStore, func() error, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	noop := func() error { return nil }

	switch cfg.Catalog.Source {
	case config.SourceFile:
		logger.Info("using file ingredient catalog", "path", cfg.Catalog.FilePath)
		return file.NewStore(cfg.Catalog.FilePath), noop, nil

	case config.SourcePostgres:
		logger.Info("connecting to postgres", "host", cfg.Database.Host, "database", cfg.Database.Name)
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		repo := postgres.NewIngredientRepo(db)
		if err := repo.Ping(ctx); err != nil {
			db.Close()
			return nil, noop, fmt.Errorf("pinging postgres: %w", err)
		}
		return repo, db.Close, nil

	case config.SourceSQLite:
		logger.Info("opening sqlite ingredient catalog", "path", cfg.Database.SQLitePath)
		s, err := sqlite.NewStore(cfg.Database.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil

	case config.SourceHTTP:
		logger.Info("using remote ingredient service", "base_url", cfg.Catalog.HTTP.BaseURL)
		client := ingredientapi.NewClient(ingredientapi.ClientConfig{
			BaseURL:           cfg.Catalog.HTTP.BaseURL,
			APIKey:            cfg.Catalog.HTTP.APIKey,
			Timeout:           cfg.Catalog.HTTP.Timeout,
			RequestsPerSecond: cfg.Catalog.HTTP.RequestsPerSecond,
			MaxRetries:        cfg.Catalog.HTTP.MaxRetries,
		}, logger)
		return client, noop, nil
	}

	return nil, noop, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
}
