package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Amaru333/cci-hackathon-2025-backend/internal/domain"
)

// DefaultThreshold is the minimum fuzzy score accepted when none is configured.
const DefaultThreshold = 80

// exactMatchScore is reported for tier-1 hits.
const exactMatchScore = 100.0

// MatchConfig holds configuration for the matcher
type MatchConfig struct {
	EnableDebugLogging bool
}

// Matcher resolves normalized names against an ordered catalog using three tiers:
// exact, substring, then token-set fuzzy scoring. It holds no catalog state.
type Matcher struct {
	enableDebugLogging bool
	logger             *slog.Logger
}

// NewMatcher creates a new matcher with the given configuration
func NewMatcher(config MatchConfig, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Matcher{
		enableDebugLogging: config.EnableDebugLogging,
		logger:             logger,
	}
}

// Resolve matches name against catalog and returns the first tier that produces a
// candidate. Catalog order is the tie-break for every tier. A name with no tokens
// is never resolved.
func (m *Matcher) Resolve(name string, catalog []string, threshold int) domain.Resolution {
	if name == "" {
		return domain.Resolution{Tier: domain.TierUnresolved}
	}

	if res, ok := matchExact(name, catalog); ok {
		m.debug("exact match", name, res)
		return res
	}

	if res, ok := matchSubstring(name, catalog); ok {
		m.debug("substring match", name, res)
		return res
	}

	res := matchFuzzy(name, catalog)
	if res.Name != "" && res.Score >= float64(threshold) {
		m.debug("fuzzy match", name, res)
		return res
	}

	m.debug("unresolved", name, res)
	return domain.Resolution{Tier: domain.TierUnresolved, Score: res.Score}
}

// matchExact returns the first catalog entry equal to name.
func matchExact(name string, catalog []string) (domain.Resolution, bool) {
	for _, entry := range catalog {
		if entry == name {
			return domain.Resolution{Name: entry, Tier: domain.TierExact, Score: exactMatchScore}, true
		}
	}
	return domain.Resolution{}, false
}

// matchSubstring returns the first catalog entry that contains name or is contained in it.
// Empty entries are skipped; they would otherwise swallow every name.
func matchSubstring(name string, catalog []string) (domain.Resolution, bool) {
	for _, entry := range catalog {
		if entry == "" {
			continue
		}
		if strings.Contains(name, entry) || strings.Contains(entry, name) {
			return domain.Resolution{
				Name:  entry,
				Tier:  domain.TierSubstring,
				Score: TokenSetRatio(name, entry),
			}, true
		}
	}
	return domain.Resolution{}, false
}

// matchFuzzy returns the highest scoring catalog entry; ties keep the earliest entry.
// The caller applies the threshold.
func matchFuzzy(name string, catalog []string) domain.Resolution {
	best := domain.Resolution{Tier: domain.TierFuzzy}
	highestScore := -1.0 // so that a zero score still selects the first entry

	for _, entry := range catalog {
		score := TokenSetRatio(name, entry)
		if score > highestScore {
			highestScore = score
			best.Name = entry
			best.Score = score
		}
	}

	return best
}

func (m *Matcher) debug(msg, name string, res domain.Resolution) {
	if !m.enableDebugLogging {
		return
	}
	m.logger.LogAttrs(context.Background(), slog.LevelDebug, msg,
		slog.String("name", name),
		slog.String("candidate", res.Name),
		slog.String("tier", string(res.Tier)),
		slog.Float64("score", res.Score),
	)
}
