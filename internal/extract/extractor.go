package extract

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// ResponseCount is the number of suggestions every extraction yields
const ResponseCount = 3

// Filler pads the result when the model produced fewer items than requested
const Filler = "Sorry, unable to generate more responses."

var (
	// markerPattern matches "回应<digits>" followed by a half- or full-width colon
	markerPattern = regexp.MustCompile(`回应\d+[:：]`)

	// leadingMarkerPattern strips a marker-like prefix from a fallback line
	leadingMarkerPattern = regexp.MustCompile(`^回应\d+[:：]\s*`)
)

// Responses turns raw model output into exactly ResponseCount suggestions.
// Labeled items win; unlabeled output falls back to the first non-blank lines.
func Responses(raw string) []string {
	items := byMarkers(raw)
	if len(items) == 0 {
		items = byLines(raw)
	}
	return normalize(items)
}

// byMarkers returns the trimmed text following each marker, up to the next marker
// or end of input, in order of appearance. Empty segments are kept.
func byMarkers(raw string) []string {
	locs := markerPattern.FindAllStringIndex(raw, -1)
	if len(locs) == 0 {
		return nil
	}

	items := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		items = append(items, strings.TrimSpace(raw[loc[1]:end]))
	}
	return items
}

// byLines returns up to ResponseCount non-blank lines with any marker prefix removed
func byLines(raw string) []string {
	lines := lo.Filter(strings.Split(raw, "\n"), func(line string, _ int) bool {
		return strings.TrimSpace(line) != ""
	})
	if len(lines) > ResponseCount {
		lines = lines[:ResponseCount]
	}

	return lo.Map(lines, func(line string, _ int) string {
		return strings.TrimSpace(leadingMarkerPattern.ReplaceAllString(strings.TrimSpace(line), ""))
	})
}

// normalize pads with Filler or truncates so the result has exactly ResponseCount items
func normalize(items []string) []string {
	out := make([]string, 0, ResponseCount)
	for _, item := range items {
		if len(out) == ResponseCount {
			break
		}
		out = append(out, item)
	}
	for len(out) < ResponseCount {
		out = append(out, Filler)
	}
	return out
}
