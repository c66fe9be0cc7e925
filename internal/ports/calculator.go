package ports

import (
	"context"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
)

// SimilarityCalculator defines the interface for computing similarity between texts.
type SimilarityCalculator interface {
	Compare(ctx context.Context, a, b string) (domain.Report, error)
}

// BatchCalculator scores a query against a set of candidates, keeping candidate order.
type BatchCalculator interface {
	CompareAgainstCandidates(ctx context.Context, query string, candidates []domain.Candidate) ([]domain.CandidateScore, error)
}
