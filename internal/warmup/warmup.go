// Package warmup exercises the engine on generated text before it serves
// real traffic, so pools and code paths are hot on the first request.
package warmup

import (
	"context"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size for warmup
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency:    runtime.NumCPU(),
		Iterations:     20,
		SampleTextSize: 500,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	calculators []ports.SimilarityCalculator
	batches     []ports.BatchCalculator
	normalizers []ports.Normalizer
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterCalculator adds a calculator to be warmed up
func (wm *Manager) RegisterCalculator(calc ports.SimilarityCalculator) {
	wm.calculators = append(wm.calculators, calc)
}

// RegisterBatchCalculator adds a batch calculator to be warmed up
func (wm *Manager) RegisterBatchCalculator(calc ports.BatchCalculator) {
	wm.batches = append(wm.batches, calc)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs the warmup process for all registered components
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.calculators)+len(wm.batches)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	original := sampleText(wm.config.SampleTextSize)
	variants := []string{
		original,
		perturb(original, 0.1),
		perturb(original, 0.5),
	}

	for _, norm := range wm.normalizers {
		wm.fanOut(ctx, wm.config.Iterations, func(int) {
			_ = norm.Normalize(original)
		})
	}

	for _, calc := range wm.calculators {
		wm.fanOut(ctx, wm.config.Iterations, func(j int) {
			_, _ = calc.Compare(ctx, original, variants[j%len(variants)])
		})
	}

	candidates := make([]domain.Candidate, len(variants))
	for i, v := range variants {
		candidates[i] = domain.Candidate{ID: strconv.Itoa(i), Content: v}
	}
	for _, batch := range wm.batches {
		wm.fanOut(ctx, wm.config.Iterations/10, func(int) {
			_, _ = batch.CompareAgainstCandidates(ctx, original, candidates)
		})
	}

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
	)
}

// fanOut runs fn iterations times on each of Concurrency goroutines and
// stops early once ctx is done.
func (wm *Manager) fanOut(ctx context.Context, iterations int, fn func(iteration int)) {
	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				if ctx.Err() != nil {
					return
				}
				fn(j)
			}
		}()
	}
	wg.Wait()
}

var sampleLines = []string{
	"the quick brown fox jumps over the lazy dog",
	"pack my box with five dozen liquor jugs",
	"a journey of a thousand miles begins with a single step",
	"café naïve résumé coöperate façade",
	"numbers like 42 and 1024 appear in text too",
}

// sampleText builds multi-line text of at most size bytes from sampleLines.
func sampleText(size int) string {
	var sb strings.Builder
	for i := 0; sb.Len() < size; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(sampleLines[i%len(sampleLines)])
	}
	return strings.ToValidUTF8(sb.String()[:min(size, sb.Len())], "")
}

var replacements = []string{"replaced", "modified", "changed", "altered", "updated"}

// perturb replaces the leading ratio of words on every line of text.
func perturb(text string, ratio float64) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		words := strings.Fields(line)
		for j := 0; j < int(float64(len(words))*ratio); j++ {
			words[j] = replacements[j%len(replacements)]
		}
		lines[i] = strings.Join(words, " ")
	}
	return strings.Join(lines, "\n")
}
