package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponses(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "three half-width markers",
			raw:      "回应1:A 回应2:B 回应3:C",
			expected: []string{"A", "B", "C"},
		},
		{
			name:     "full-width colons across lines",
			raw:      "回应1：你先看看自己\n回应2：证据呢？\n回应3：说完了吗",
			expected: []string{"你先看看自己", "证据呢？", "说完了吗"},
		},
		{
			name:     "five markers keep first three in discovered order",
			raw:      "回应3:C 回应1:A 回应5:E 回应2:B 回应4:D",
			expected: []string{"C", "A", "E"},
		},
		{
			name:     "single marker is padded",
			raw:      "回应1: only one",
			expected: []string{"only one", Filler, Filler},
		},
		{
			name:     "preamble before first marker is ignored",
			raw:      "好的，以下是回应：\n回应1：甲\n回应2：乙\n回应3：丙",
			expected: []string{"甲", "乙", "丙"},
		},
		{
			name:     "empty segment is preserved",
			raw:      "回应1:回应2:B 回应3:C",
			expected: []string{"", "B", "C"},
		},
		{
			name:     "multi-digit marker",
			raw:      "回应10:X 回应11:Y 回应12:Z",
			expected: []string{"X", "Y", "Z"},
		},
		{
			name:     "no markers falls back to first three lines",
			raw:      "first\n\n  second  \nthird\nfourth",
			expected: []string{"first", "second", "third"},
		},
		{
			name:     "no markers with fewer lines is padded",
			raw:      "just this",
			expected: []string{"just this", Filler, Filler},
		},
		{
			name:     "empty text yields fillers",
			raw:      "",
			expected: []string{Filler, Filler, Filler},
		},
		{
			name:     "whitespace only yields fillers",
			raw:      " \n\t\n ",
			expected: []string{Filler, Filler, Filler},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Responses(tt.raw)
			require.Len(t, got, ResponseCount)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResponses_AlwaysThree(t *testing.T) {
	inputs := []string{
		"",
		"回应1:",
		strings.Repeat("回应1:x ", 50),
		strings.Repeat("line\n", 50),
		"回应",
		"回应a:not a marker",
		"\n\n\n",
	}

	for _, in := range inputs {
		assert.Len(t, Responses(in), ResponseCount, "input %q", in)
	}
}

func TestByLines_StripsMarkerPrefix(t *testing.T) {
	got := byLines("回应1： alpha\nbeta\n回应3:gamma\ndelta")
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, got)
}

func TestByMarkers_NoMarkers(t *testing.T) {
	assert.Empty(t, byMarkers("nothing labeled here"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, normalize([]string{"a", "b", "c", "d"}))
	assert.Equal(t, []string{"a", Filler, Filler}, normalize([]string{"a"}))
	assert.Equal(t, []string{Filler, Filler, Filler}, normalize(nil))
}
