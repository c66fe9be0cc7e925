package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/baditaflorin/go_text_similarity/internal/core/metrics"
)

type discardLogger struct{}

func (discardLogger) Debug(string, ...interface{}) {}
func (discardLogger) Info(string, ...interface{})  {}
func (discardLogger) Warn(string, ...interface{})  {}
func (discardLogger) Error(string, ...interface{}) {}
func (discardLogger) Close() error                 { return nil }

type normalizerFunc func(string) string

func (f normalizerFunc) Normalize(text string) string { return f(text) }

func newTestCalculator(t *testing.T, threshold float64) *Calculator {
	t.Helper()
	calc, err := NewCalculator(SimilarityConfig{Threshold: threshold}, discardLogger{}, normalizerFunc(metrics.Normalize))
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	return calc
}

func TestNewCalculatorValidation(t *testing.T) {
	tests := []struct {
		name      string
		config    SimilarityConfig
		expectErr bool
	}{
		{"default", DefaultConfig(), false},
		{"zero threshold", SimilarityConfig{Threshold: 0}, false},
		{"negative threshold", SimilarityConfig{Threshold: -0.1}, true},
		{"threshold above one", SimilarityConfig{Threshold: 1.1}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCalculator(tc.config, discardLogger{}, normalizerFunc(metrics.Normalize))
			if (err != nil) != tc.expectErr {
				t.Errorf("expected error=%v, got %v", tc.expectErr, err)
			}
		})
	}

	if _, err := NewCalculator(DefaultConfig(), nil, normalizerFunc(metrics.Normalize)); err == nil {
		t.Error("expected error for missing logger")
	}
	if _, err := NewCalculator(DefaultConfig(), discardLogger{}, nil); err == nil {
		t.Error("expected error for missing normalizer")
	}
}

func TestCompare(t *testing.T) {
	calc := newTestCalculator(t, 0.7)
	ctx := context.Background()

	tests := []struct {
		name   string
		a, b   string
		passed bool
	}{
		{"identical", "The quick brown fox.", "The quick brown fox.", true},
		{"different", "The quick brown fox.", "A completely unrelated sentence.", false},
		{"empty", "", "The quick brown fox.", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			report, err := calc.Compare(ctx, tc.a, tc.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if report.Passed != tc.passed {
				t.Errorf("expected passed=%v, got %v (overall %v)", tc.passed, report.Passed, report.Overall)
			}
			if report.Threshold != 0.7 {
				t.Errorf("expected threshold 0.7, got %v", report.Threshold)
			}
		})
	}
}

func TestCompareMatchesMetrics(t *testing.T) {
	calc := newTestCalculator(t, 0.5)
	a, b := "the cat sat on the mat", "the cat ran off the mat"

	report, err := calc.Compare(context.Background(), a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := metrics.CombinedSimilarity(a, b)
	if report.Overall != want.Overall || report.Jaccard != want.Jaccard || report.Cosine != want.Cosine {
		t.Errorf("calculator report %+v differs from metrics report %+v", report, want)
	}
}

func TestCompareCancelled(t *testing.T) {
	calc := newTestCalculator(t, 0.7)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := calc.Compare(ctx, "a text", "another text"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCompareAgainstCandidates(t *testing.T) {
	calc := newTestCalculator(t, 0.7)
	candidates := []domain.Candidate{
		{ID: "1", Name: "A", Content: "hello world"},
		{ID: "2", Name: "B", Content: "xyz"},
	}

	scores, err := calc.CompareAgainstCandidates(context.Background(), "hello world", candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}
	if scores[0].SimilarityPercentage != "100.00" || scores[0].ID != "1" {
		t.Errorf("unexpected first score %+v", scores[0])
	}
	if scores[1].ID != "2" {
		t.Errorf("order not preserved: %+v", scores)
	}
}

func TestCompareAgainstCandidatesCancelled(t *testing.T) {
	calc := newTestCalculator(t, 0.7)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scores, err := calc.CompareAgainstCandidates(ctx, "q", []domain.Candidate{{ID: "1", Content: "q"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if scores != nil {
		t.Errorf("expected no partial results, got %v", scores)
	}
}
