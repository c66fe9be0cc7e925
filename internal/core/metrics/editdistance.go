package metrics

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	// EmptyEditDistanceSimilarity is returned when both texts are empty.
	EmptyEditDistanceSimilarity = 0.0
	// EmptyLineSimilarity is returned when both lines are empty; two blank
	// lines are treated as identical.
	EmptyLineSimilarity = 1.0
)

// EditDistance returns the Levenshtein distance between a and b counted in runes.
func EditDistance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// EditDistanceSimilarity returns 1 - distance/max(len(a), len(b)) in [0, 1].
// Two empty strings yield EmptyEditDistanceSimilarity.
func EditDistanceSimilarity(a, b string) float64 {
	return distanceSimilarity(a, b, EmptyEditDistanceSimilarity)
}

// LineSimilarity scores two normalized lines the same way as
// EditDistanceSimilarity, except that two empty lines yield EmptyLineSimilarity.
func LineSimilarity(line1, line2 string) float64 {
	return distanceSimilarity(line1, line2, EmptyLineSimilarity)
}

func distanceSimilarity(a, b string, bothEmpty float64) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return bothEmpty
	}
	return 1 - float64(EditDistance(a, b))/float64(maxLen)
}
