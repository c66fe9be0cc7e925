package metrics

import (
	"strings"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
)

// Weights of the combined score. Jaccard and cosine reward shared
// vocabulary, edit distance rewards the exact character sequence.
const (
	JaccardWeight      = 0.4
	CosineWeight       = 0.4
	EditDistanceWeight = 0.2
)

// WeightedScore blends the three component scores into the overall score.
func WeightedScore(jaccard, cosine, editDistance float64) float64 {
	return JaccardWeight*jaccard + CosineWeight*cosine + EditDistanceWeight*editDistance
}

// CombinedSimilarity builds a detailed report for a and b using Normalize.
func CombinedSimilarity(a, b string) domain.Report {
	return CombinedSimilarityWith(a, b, Normalize)
}

// CombinedSimilarityWith builds a detailed report for a and b. Every metric
// runs on the normalized form of both texts. If either text is blank the
// zero-valued report is returned.
func CombinedSimilarityWith(a, b string, normalize func(string) string) domain.Report {
	if IsBlank(a) || IsBlank(b) {
		return domain.EmptyReport(0)
	}

	normA := normalize(a)
	normB := normalize(b)

	jaccard := JaccardSimilarity(normA, normB)
	cosine := CosineSimilarity(normA, normB)
	editDistance := EditDistanceSimilarity(normA, normB)

	return domain.Report{
		Overall:      WeightedScore(jaccard, cosine, editDistance),
		Jaccard:      jaccard,
		Cosine:       cosine,
		EditDistance: editDistance,
		WordMatches:  WordMatches(normA, normB),
		LineMatches:  LineMatches(a, b, normalize),
	}
}

// WordMatches reports, for every token of a in order, whether it is one of b's tokens.
func WordMatches(a, b string) []domain.WordMatch {
	tokensA := Tokenize(a)
	setB := tokenSet(Tokenize(b))

	matches := make([]domain.WordMatch, 0, len(tokensA))
	for _, t := range tokensA {
		_, ok := setB[t]
		matches = append(matches, domain.WordMatch{Word: t, Matched: ok})
	}
	return matches
}

// LineMatches pairs every line of a with the most similar line of b.
// Lines are compared after normalization; the first best line of b wins ties.
func LineMatches(a, b string, normalize func(string) string) []domain.LineMatch {
	linesA := SplitLines(a)
	linesB := SplitLines(b)

	normB := make([]string, len(linesB))
	for j, line := range linesB {
		normB[j] = normalize(line)
	}

	matches := make([]domain.LineMatch, 0, len(linesA))
	for i, line := range linesA {
		normLine := normalize(line)
		best, bestScore := -1, -1.0
		for j, candidate := range normB {
			if score := LineSimilarity(normLine, candidate); score > bestScore {
				best, bestScore = j, score
			}
		}
		if best < 0 {
			continue
		}
		matches = append(matches, domain.LineMatch{
			Line:                line,
			LineNumber:          i + 1,
			BestMatch:           linesB[best],
			BestMatchLineNumber: best + 1,
			Score:               bestScore,
		})
	}
	return matches
}

// SplitLines splits text on line feeds, dropping a trailing carriage return from each line.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
