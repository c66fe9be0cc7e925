package metrics

import "math"

const (
	// EmptyJaccardSimilarity is returned when neither text has a qualifying token.
	EmptyJaccardSimilarity = 0.0
)

// JaccardSimilarity returns |A ∩ B| / |A ∪ B| over the distinct tokens of a and b.
func JaccardSimilarity(a, b string) float64 {
	setA := tokenSet(Tokenize(a))
	setB := tokenSet(Tokenize(b))

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return EmptyJaccardSimilarity
	}
	return float64(intersection) / float64(union)
}

// CosineSimilarity returns the cosine of the angle between the term
// frequency vectors of a and b. The magnitude product is floored at 1, so a
// side without qualifying tokens yields 0.
func CosineSimilarity(a, b string) float64 {
	freqA := termFrequencies(Tokenize(a))
	freqB := termFrequencies(Tokenize(b))

	// Integer sums keep the result independent of map iteration order.
	var dot, sqA, sqB int64
	for t, ca := range freqA {
		sqA += ca * ca
		dot += ca * freqB[t]
	}
	for _, cb := range freqB {
		sqB += cb * cb
	}

	denominator := math.Sqrt(float64(sqA) * float64(sqB))
	if denominator < 1 {
		denominator = 1
	}
	return math.Min(1, float64(dot)/denominator)
}
