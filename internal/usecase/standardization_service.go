package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Amaru333/cci-hackathon-2025-backend/internal/domain"
)

// CatalogSource provides the ordered canonical names used for matching.
type CatalogSource interface {
	Names(ctx context.Context) ([]string, error)
}

// StandardizationConfig holds configuration for the standardization service
type StandardizationConfig struct {
	Threshold          int
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// StandardizationService rewrites extracted receipt item names to canonical
// ingredient names.
type StandardizationService struct {
	catalog   CatalogSource
	matcher   *Matcher
	cache     domain.ResolutionCache
	threshold int
	cacheTTL  time.Duration
	logger    *slog.Logger
}

// StandardizeOption customizes a single Standardize call.
type StandardizeOption func(*standardizeOptions)

type standardizeOptions struct {
	threshold *int
}

// WithThreshold overrides the configured fuzzy threshold for one call.
func WithThreshold(threshold int) StandardizeOption {
	return func(o *standardizeOptions) {
		o.threshold = &threshold
	}
}

// NewStandardizationService creates a new standardization service. cache may be
// nil, in which case every name is resolved against the catalog.
func NewStandardizationService(
	catalog CatalogSource,
	cache domain.ResolutionCache,
	config StandardizationConfig,
	logger *slog.Logger,
) *StandardizationService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	threshold := config.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &StandardizationService{
		catalog:   catalog,
		matcher:   NewMatcher(MatchConfig{EnableDebugLogging: config.EnableDebugLogging}, logger),
		cache:     cache,
		threshold: threshold,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Threshold returns the configured default fuzzy threshold.
func (s *StandardizationService) Threshold() int {
	return s.threshold
}

// Standardize returns a copy of items in the same order where every name that
// matches the catalog is replaced by its canonical form. Unmatched items keep their
// original raw name. Price, quantity and unit are never touched.
//
// The first call may load the catalog; if that fails the error wraps
// domain.ErrCatalogUnavailable and no items are returned.
func (s *StandardizationService) Standardize(
	ctx context.Context,
	items []domain.ExtractedItem,
	opts ...StandardizeOption,
) ([]domain.ExtractedItem, error) {
	out, _, err := s.StandardizeWithReport(ctx, items, opts...)
	return out, err
}

// StandardizeWithReport behaves like Standardize and also returns one outcome per
// item describing the normalized name and the tier that resolved it.
func (s *StandardizationService) StandardizeWithReport(
	ctx context.Context,
	items []domain.ExtractedItem,
	opts ...StandardizeOption,
) ([]domain.ExtractedItem, []domain.ItemOutcome, error) {
	options := standardizeOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	threshold := s.threshold
	if options.threshold != nil {
		threshold = *options.threshold
	}

	catalog, err := s.catalog.Names(ctx)
	if err != nil {
		return nil, nil, err
	}

	out := make([]domain.ExtractedItem, len(items))
	copy(out, items)
	outcomes := make([]domain.ItemOutcome, len(items))

	resolved := 0
	for i := range out {
		raw := out[i].Name
		normalized := Normalize(raw)
		res := s.resolve(ctx, normalized, catalog, threshold)

		if res.Resolved() {
			out[i].Name = res.Name
			resolved++
		}
		outcomes[i] = domain.ItemOutcome{
			Raw:        raw,
			Normalized: normalized,
			Resolution: res,
		}
	}

	s.logger.Debug("standardized receipt items",
		"items", len(out),
		"resolved", resolved,
		"threshold", threshold,
	)

	return out, outcomes, nil
}

// CatalogNames exposes the loaded catalog, loading it if necessary.
func (s *StandardizationService) CatalogNames(ctx context.Context) ([]string, error) {
	return s.catalog.Names(ctx)
}

// resolve consults the cache before running the matcher. The catalog is immutable
// once loaded, so cached resolutions never go stale within a process.
func (s *StandardizationService) resolve(
	ctx context.Context,
	normalized string,
	catalog []string,
	threshold int,
) domain.Resolution {
	if s.cache == nil {
		return s.matcher.Resolve(normalized, catalog, threshold)
	}

	key := generateCacheKey(normalized, threshold)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		return cached
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.Warn("resolution cache read failed", "key", key, "error", err)
	}

	res := s.matcher.Resolve(normalized, catalog, threshold)

	if err := s.cache.Set(ctx, key, res, s.cacheTTL); err != nil {
		// a failed write only costs a recomputation next time
		s.logger.Warn("resolution cache write failed", "key", key, "error", err)
	}

	return res
}

// generateCacheKey creates a cache key for a normalized name at a threshold.
// Format: "resolution:{threshold}:{normalized_name}"
func generateCacheKey(normalized string, threshold int) string {
	return fmt.Sprintf("resolution:%d:%s", threshold, normalized)
}
