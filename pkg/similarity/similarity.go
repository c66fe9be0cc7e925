// Package similarity computes how alike two texts are.
//
// A Similarity offers the individual metrics (edit distance, Jaccard,
// cosine), a detailed report blending them with word and line matches,
// and a batch mode scoring one query against many candidates.
package similarity

import (
	"context"
	"errors"
	"sync"

	"github.com/baditaflorin/go_text_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_text_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_text_similarity/internal/adapters/store/memory"
	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/baditaflorin/go_text_similarity/internal/core/engine"
	"github.com/baditaflorin/go_text_similarity/internal/core/metrics"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
	"github.com/baditaflorin/go_text_similarity/internal/warmup"
)

type (
	// Report is the detailed result of comparing two texts.
	Report = domain.Report
	// WordMatch tells whether a word of the first text occurs in the second.
	WordMatch = domain.WordMatch
	// LineMatch pairs a line with its closest counterpart.
	LineMatch = domain.LineMatch
	// Candidate is a document a query is compared against.
	Candidate = domain.Candidate
	// CandidateScore is the batch result for one candidate.
	CandidateScore = domain.CandidateScore
)

var (
	// ErrInvalidInput is returned for payloads that are not text.
	ErrInvalidInput = domain.ErrInvalidInput
	// ErrNotFound is returned when a stored document does not exist.
	ErrNotFound = domain.ErrNotFound
)

// Similarity is the entry point for all text comparisons.
type Similarity struct {
	calculator *engine.Calculator
	logger     ports.Logger
	normalizer ports.Normalizer
	repository ports.DocumentRepository
	maxInput   int
	ownsLogger bool

	warmOnce sync.Once
}

// New creates a new Similarity instance.
func New(opts ...Option) (*Similarity, error) {
	// Default configuration
	defaultConfig := engine.DefaultConfig()

	cfg := &config{
		Threshold:    defaultConfig.Threshold,
		WarmUp:       false,
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.MaxInputLength < 0 {
		return nil, errors.New("max input length must not be negative")
	}

	ownsLogger := false
	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
		ownsLogger = true
	}

	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.NewDefaultNormalizer()
	}

	if cfg.Repository == nil {
		cfg.Repository = memory.New()
	}

	calculator, err := engine.NewCalculator(engine.SimilarityConfig{Threshold: cfg.Threshold}, cfg.Logger, cfg.Normalizer)
	if err != nil {
		return nil, err
	}

	s := &Similarity{
		calculator: calculator,
		logger:     cfg.Logger,
		normalizer: cfg.Normalizer,
		repository: cfg.Repository,
		maxInput:   cfg.MaxInputLength,
		ownsLogger: ownsLogger,
	}

	if cfg.WarmUp {
		s.WarmUp(context.Background(), cfg.WarmUpConfig)
	}

	return s, nil
}

// Threshold returns the pass threshold of detailed comparisons.
func (s *Similarity) Threshold() float64 {
	return s.calculator.Threshold()
}

// Documents returns the document repository.
func (s *Similarity) Documents() ports.DocumentRepository {
	return s.repository
}

// EditDistanceSimilarity compares the raw texts character by character.
func (s *Similarity) EditDistanceSimilarity(a, b string) float64 {
	return metrics.EditDistanceSimilarity(s.clip(a), s.clip(b))
}

// NormalizedEditDistanceSimilarity compares the normalized texts character by character.
func (s *Similarity) NormalizedEditDistanceSimilarity(a, b string) float64 {
	return metrics.EditDistanceSimilarity(s.normalizer.Normalize(s.clip(a)), s.normalizer.Normalize(s.clip(b)))
}

// Jaccard returns the overlap of the distinct words of a and b.
func (s *Similarity) Jaccard(a, b string) float64 {
	return metrics.JaccardSimilarity(s.clip(a), s.clip(b))
}

// Cosine returns the cosine of the word frequency vectors of a and b.
func (s *Similarity) Cosine(a, b string) float64 {
	return metrics.CosineSimilarity(s.clip(a), s.clip(b))
}

// LineSimilarity compares two lines after normalization.
func (s *Similarity) LineSimilarity(line1, line2 string) float64 {
	return metrics.LineSimilarity(s.normalizer.Normalize(s.clip(line1)), s.normalizer.Normalize(s.clip(line2)))
}

// Compare builds the detailed report for a and b.
func (s *Similarity) Compare(ctx context.Context, a, b string) (Report, error) {
	return s.calculator.Compare(ctx, s.clip(a), s.clip(b))
}

// CompareAgainstCandidates scores query against every candidate, keeping their order.
func (s *Similarity) CompareAgainstCandidates(ctx context.Context, query string, candidates []Candidate) ([]CandidateScore, error) {
	if s.maxInput > 0 {
		clipped := make([]Candidate, len(candidates))
		for i, c := range candidates {
			c.Content = s.clip(c.Content)
			clipped[i] = c
		}
		candidates = clipped
	}
	return s.calculator.CompareAgainstCandidates(ctx, s.clip(query), candidates)
}

// CompareStored scores query against every stored document in insertion order.
func (s *Similarity) CompareStored(ctx context.Context, query string) ([]CandidateScore, error) {
	docs, err := s.repository.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.CompareAgainstCandidates(ctx, query, docs)
}

// CompareWithStored builds the detailed report of text against the stored document id.
func (s *Similarity) CompareWithStored(ctx context.Context, text, id string) (Report, error) {
	doc, err := s.repository.Get(ctx, id)
	if err != nil {
		return Report{}, err
	}
	return s.Compare(ctx, text, doc.Content)
}

// Rank returns scores ordered by descending similarity.
func Rank(scores []CandidateScore) []CandidateScore {
	return metrics.Rank(scores)
}

// WarmUp performs system warm-up to optimize performance. Only the first call has an effect.
func (s *Similarity) WarmUp(ctx context.Context, wc warmup.WarmupConfig) {
	warmed := false
	s.warmOnce.Do(func() {
		warmupMgr := warmup.NewManager(s.logger, wc)
		warmupMgr.RegisterCalculator(s.calculator)
		warmupMgr.RegisterBatchCalculator(s.calculator)
		warmupMgr.RegisterNormalizer(s.normalizer)

		warmupMgr.WarmUp(ctx)
		warmed = true
	})
	if !warmed {
		s.logger.Debug("System already warmed up, skipping")
	}
}

// Close releases the repository and, when it was created by New, the logger.
func (s *Similarity) Close() error {
	err := s.repository.Close()
	if s.ownsLogger {
		err = errors.Join(err, s.logger.Close())
	}
	return err
}

func (s *Similarity) clip(text string) string {
	if s.maxInput <= 0 || len(text) <= s.maxInput {
		return text
	}
	n := 0
	for i := range text {
		if n == s.maxInput {
			return text[:i]
		}
		n++
	}
	return text
}
