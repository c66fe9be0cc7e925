package normalizer

import (
	"github.com/baditaflorin/go_text_similarity/internal/core/metrics"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
)

// DefaultNormalizer implements the default text normalization strategy.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize composes the text to NFC, lower-cases it, drops punctuation and
// collapses whitespace.
func (n *DefaultNormalizer) Normalize(text string) string {
	return metrics.Normalize(text)
}
