package domain

// MatchTier identifies which matching strategy resolved a name.
type MatchTier string

const (
	TierUnresolved MatchTier = "unresolved"
	TierExact      MatchTier = "exact"
	TierSubstring  MatchTier = "substring"
	TierFuzzy      MatchTier = "fuzzy"
)

// Resolution is the outcome of matching one normalized name against the catalog.
type Resolution struct {
	Name  string    `json:"name,omitempty"` // canonical name, empty when unresolved
	Tier  MatchTier `json:"tier"`
	Score float64   `json:"score"` // token-set similarity 0-100
}

// Resolved reports whether any tier produced a canonical name.
func (r Resolution) Resolved() bool {
	return r.Tier != TierUnresolved && r.Tier != ""
}

// ItemOutcome records how a single extracted item was standardized.
type ItemOutcome struct {
	Raw        string     `json:"raw"`
	Normalized string     `json:"normalized"`
	Resolution Resolution `json:"resolution"`
}
