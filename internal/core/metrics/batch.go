package metrics

import (
	"math"
	"sort"
	"strconv"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
)

// Percentage converts a similarity ratio into a percentage clamped to
// [0, 100] and rounded to two decimals, with its two-decimal string form.
func Percentage(similarity float64) (float64, string) {
	p := math.Max(0, math.Min(100, similarity*100))
	p = math.Round(p*100) / 100
	return p, strconv.FormatFloat(p, 'f', 2, 64)
}

// ScoreCandidate scores a single candidate against query on raw text.
func ScoreCandidate(query string, candidate domain.Candidate) domain.CandidateScore {
	similarity := EditDistanceSimilarity(query, candidate.Content)
	_, pct := Percentage(similarity)
	return domain.CandidateScore{
		ID:                   candidate.ID,
		Name:                 candidate.Name,
		Similarity:           similarity,
		SimilarityPercentage: pct,
	}
}

// CompareAgainstCandidates scores query against every candidate. The output
// keeps the input order.
func CompareAgainstCandidates(query string, candidates []domain.Candidate) []domain.CandidateScore {
	scores := make([]domain.CandidateScore, 0, len(candidates))
	for _, c := range candidates {
		scores = append(scores, ScoreCandidate(query, c))
	}
	return scores
}

// Rank returns a copy of scores ordered by descending similarity. Equal
// scores keep their relative order.
func Rank(scores []domain.CandidateScore) []domain.CandidateScore {
	ranked := make([]domain.CandidateScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})
	return ranked
}
