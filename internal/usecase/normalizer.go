package usecase

import (
	"regexp"
	"strings"
)

// Compiled regex patterns for name normalization
var (
	// Anything that is not a lowercase ASCII letter or a plain space
	nonLetterPattern = regexp.MustCompile(`[^a-z ]`)

	// Runs of spaces left behind after stripping
	spaceRunPattern = regexp.MustCompile(` {2,}`)
)

// Normalize converts a raw receipt item name into the form stored in the catalog:
// lowercase, letters and single spaces only, trimmed, then naively depluralized.
//
// The depluralization drops a trailing "es", or failing that a trailing "s". It is
// deliberately not a stemmer ("bus" becomes "bu") because catalog entries and the
// fuzzy threshold were tuned against exactly this rule.
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = nonLetterPattern.ReplaceAllString(s, "")
	s = spaceRunPattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	switch {
	case strings.HasSuffix(s, "es"):
		s = s[:len(s)-2]
	case strings.HasSuffix(s, "s"):
		s = s[:len(s)-1]
	}

	// "tomato es" leaves a dangling space once the suffix is gone
	return strings.TrimSpace(s)
}
