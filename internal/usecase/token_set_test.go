package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical strings", a: "chicken breast", b: "chicken breast", want: 100},
		{name: "token order is ignored", a: "breast chicken", b: "chicken breast", want: 100},
		{name: "subset of tokens scores 100", a: "chicken", b: "chicken breast", want: 100},
		{name: "duplicate tokens collapse", a: "salt salt", b: "salt", want: 100},
		{name: "one character typo", a: "chicken brest", b: "chicken breast", want: 100 - 100.0/27},
		{name: "no shared tokens uses full strings", a: "potato", b: "tomato", want: 100 - 100*4.0/12},
		{name: "disjoint characters", a: "abc", b: "xyz", want: 0},
		{name: "empty left side", a: "", b: "tomato", want: 0},
		{name: "empty right side", a: "tomato", b: "", want: 0},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "whitespace only", a: "   ", b: "tomato", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TokenSetRatio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestTokenSetRatio_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"chicken brest", "chicken breast"},
		{"red apple", "green apple"},
		{"xyzzy unknown thing", "onion"},
		{"apple zz", "apple xy"},
	}

	for _, p := range pairs {
		assert.InDelta(t, TokenSetRatio(p[0], p[1]), TokenSetRatio(p[1], p[0]), 1e-9, "pair %v", p)
	}
}

func TestTokenSetRatio_SharedTokenComparisons(t *testing.T) {
	// sect="apple", sectA="apple red", sectB="apple green"
	// ratio(sectA, sectB) = 2*8/20 = 80 beats ratio(sect, sectA) = 2*5/14
	assert.InDelta(t, 80.0, TokenSetRatio("red apple", "green apple"), 1e-9)

	// sect="apple", sectA="apple zz": ratio(sect, sectA) = 2*5/13 is the best pair
	assert.InDelta(t, 100-100*3.0/13, TokenSetRatio("apple zz", "apple xy"), 1e-9)
}

func TestLongestCommonSubsequence(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"abcde", "ace", 3},
		{"abc", "abc", 3},
		{"", "abc", 0},
		{"abc", "", 0},
		{"tomato", "potato", 4},
		{"jalapeño", "jalapeno", 7},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, longestCommonSubsequence([]rune(tt.a), []rune(tt.b)))
		})
	}
}

func TestIndelRatio(t *testing.T) {
	assert.InDelta(t, 100.0, indelRatio("", ""), 1e-9)
	assert.InDelta(t, 0.0, indelRatio("", "abc"), 1e-9)
	assert.InDelta(t, 100.0, indelRatio("abc", "abc"), 1e-9)
	assert.InDelta(t, 100-100*2.0/6, indelRatio("ab", "abxy"), 1e-9)
}
