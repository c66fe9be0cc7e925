package engine

import (
	"context"
	"errors"
	"time"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/baditaflorin/go_text_similarity/internal/core/metrics"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
)

// SimilarityConfig holds configuration for the similarity calculator.
type SimilarityConfig struct {
	Threshold float64
}

// DefaultConfig returns a default configuration.
func DefaultConfig() SimilarityConfig {
	return SimilarityConfig{
		Threshold: 0.7,
	}
}

// Validate checks if the configuration is valid.
func (c SimilarityConfig) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return errors.New("threshold must be between 0 and 1")
	}
	return nil
}

// Calculator runs the similarity metrics with an injected normalizer and logger.
type Calculator struct {
	config     SimilarityConfig
	logger     ports.Logger
	normalizer ports.Normalizer
}

// NewCalculator creates a new similarity calculator.
func NewCalculator(config SimilarityConfig, logger ports.Logger, normalizer ports.Normalizer) (*Calculator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if normalizer == nil {
		return nil, errors.New("normalizer is required")
	}

	return &Calculator{
		config:     config,
		logger:     logger,
		normalizer: normalizer,
	}, nil
}

// Threshold returns the pass threshold applied to the overall score.
func (c *Calculator) Threshold() float64 {
	return c.config.Threshold
}

// Normalize applies the calculator's normalizer.
func (c *Calculator) Normalize(text string) string {
	return c.normalizer.Normalize(text)
}

// Compare builds the detailed report for a and b.
func (c *Calculator) Compare(ctx context.Context, a, b string) (domain.Report, error) {
	c.logger.Debug("Starting detailed comparison",
		"a_length", len(a),
		"b_length", len(b),
	)

	if err := ctx.Err(); err != nil {
		c.logger.Error("Computation cancelled", "error", err)
		return domain.Report{}, err
	}

	if metrics.IsBlank(a) || metrics.IsBlank(b) {
		c.logger.Debug("Empty input, returning zero report")
		return domain.EmptyReport(c.config.Threshold), nil
	}

	start := time.Now()
	report := metrics.CombinedSimilarityWith(a, b, c.normalizer.Normalize)
	report.Threshold = c.config.Threshold
	report.Passed = report.Overall >= c.config.Threshold

	c.logger.Debug("Computed detailed comparison",
		"overall", report.Overall,
		"jaccard", report.Jaccard,
		"cosine", report.Cosine,
		"edit_distance", report.EditDistance,
		"passed", report.Passed,
		"lines", len(report.LineMatches),
		"duration", time.Since(start),
	)

	return report, nil
}

// CompareAgainstCandidates scores query against each candidate in order.
// Cancellation is checked between candidates; a cancelled call returns no
// partial results.
func (c *Calculator) CompareAgainstCandidates(ctx context.Context, query string, candidates []domain.Candidate) ([]domain.CandidateScore, error) {
	c.logger.Debug("Starting batch comparison",
		"query_length", len(query),
		"candidates", len(candidates),
	)

	start := time.Now()
	scores := make([]domain.CandidateScore, 0, len(candidates))
	for _, candidate := range candidates {
		select {
		case <-ctx.Done():
			c.logger.Error("Batch comparison cancelled",
				"error", ctx.Err(),
				"completed", len(scores),
			)
			return nil, ctx.Err()
		default:
		}
		scores = append(scores, metrics.ScoreCandidate(query, candidate))
	}

	c.logger.Debug("Computed batch comparison",
		"candidates", len(scores),
		"duration", time.Since(start),
	)

	return scores, nil
}
