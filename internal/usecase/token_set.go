package usecase

import (
	"sort"
	"strings"
)

// TokenSetRatio scores the similarity of two strings in [0, 100] by comparing
// their whitespace token sets.
//
// With I the shared tokens and A', B' the tokens unique to each side, three strings
// are built from sorted tokens: sI = I, sA = I + A', sB = I + B'. The score is the
// best pairwise indel ratio among (sI, sA), (sI, sB) and (sA, sB), where
// ratio(x, y) = 2*LCS(x, y) / (len(x) + len(y)). A string with no tokens scores 0.
func TokenSetRatio(a, b string) float64 {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	var shared, onlyA, onlyB []string
	for token := range tokensA {
		if _, ok := tokensB[token]; ok {
			shared = append(shared, token)
		} else {
			onlyA = append(onlyA, token)
		}
	}
	for token := range tokensB {
		if _, ok := tokensA[token]; !ok {
			onlyB = append(onlyB, token)
		}
	}
	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(shared, " ")
	sectA := joinTokens(sect, strings.Join(onlyA, " "))
	sectB := joinTokens(sect, strings.Join(onlyB, " "))

	best := indelRatio(sectA, sectB)
	if sect == "" {
		// both other pairs compare against an empty string and score 0
		return best
	}
	if r := indelRatio(sect, sectA); r > best {
		best = r
	}
	if r := indelRatio(sect, sectB); r > best {
		best = r
	}
	return best
}

// tokenSet splits s on whitespace into a set of tokens.
func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// joinTokens appends rest to the shared prefix, separated by a space when both are non-empty.
func joinTokens(prefix, rest string) string {
	switch {
	case prefix == "":
		return rest
	case rest == "":
		return prefix
	default:
		return prefix + " " + rest
	}
}

// indelRatio returns 100 * 2*LCS(x, y) / (len(x)+len(y)), computed over runes.
// Two empty strings are identical and score 100.
func indelRatio(x, y string) float64 {
	rx := []rune(x)
	ry := []rune(y)
	lenSum := len(rx) + len(ry)
	if lenSum == 0 {
		return 100
	}
	dist := lenSum - 2*longestCommonSubsequence(rx, ry)
	return 100 - 100*float64(dist)/float64(lenSum)
}

// longestCommonSubsequence returns the LCS length of a and b using two DP rows.
func longestCommonSubsequence(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
