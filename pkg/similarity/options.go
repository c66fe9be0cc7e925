package similarity

import (
	"github.com/baditaflorin/go_text_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_text_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
	"github.com/baditaflorin/go_text_similarity/internal/warmup"
	"github.com/baditaflorin/l"
)

// Option defines a functional option for configuring a Similarity.
type Option func(*config)

type config struct {
	Threshold      float64
	MaxInputLength int
	Logger         ports.Logger
	Normalizer     ports.Normalizer
	Repository     ports.DocumentRepository
	WarmUp         bool
	WarmUpConfig   warmup.WarmupConfig
}

// WithThreshold sets the score at which a detailed comparison passes.
func WithThreshold(th float64) Option {
	return func(cfg *config) {
		cfg.Threshold = th
	}
}

// WithMaxInputLength truncates every input to at most n runes before it is
// compared. Zero disables truncation.
func WithMaxInputLength(n int) Option {
	return func(cfg *config) {
		cfg.MaxInputLength = n
	}
}

// WithLogger sets a custom logger.
func WithLogger(l l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(l)
	}
}

// WithLoggerAdapter sets a logger that already implements ports.Logger.
func WithLoggerAdapter(lg ports.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = lg
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(normalizer ports.Normalizer) Option {
	return func(cfg *config) {
		cfg.Normalizer = normalizer
	}
}

// WithOptimizedNormalizer sets the optimized normalizer.
func WithOptimizedNormalizer() Option {
	return func(cfg *config) {
		normFactory := normalizer.NewNormalizerFactory()
		cfg.Normalizer = normFactory.CreateNormalizer(normalizer.OptimizedNormalizerType)
	}
}

// WithRepository sets the document repository used by the stored-document
// operations. The Similarity takes ownership and closes it on Close.
func WithRepository(repo ports.DocumentRepository) Option {
	return func(cfg *config) {
		cfg.Repository = repo
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *config) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(wc warmup.WarmupConfig) Option {
	return func(cfg *config) {
		cfg.WarmUpConfig = wc
		cfg.WarmUp = true
	}
}
