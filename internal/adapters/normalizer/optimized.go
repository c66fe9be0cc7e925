package normalizer

import (
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_text_similarity/internal/pool"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
	"golang.org/x/text/unicode/norm"
)

// ASCII decision table actions.
const (
	keepByte byte = iota
	spaceByte
	dropByte
	lowerByte
)

// OptimizedNormalizer produces the same output as DefaultNormalizer using a
// precomputed ASCII table and pooled buffers.
type OptimizedNormalizer struct {
	// Pre-computed decision table for ASCII characters (0-127)
	asciiTable [128]byte

	bytePool *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(8192), // 8K bytes initial capacity
	}

	for i := 0; i < utf8.RuneSelf; i++ {
		r := rune(i)
		switch {
		case unicode.IsSpace(r):
			n.asciiTable[i] = spaceByte
		case unicode.IsPunct(r):
			n.asciiTable[i] = dropByte
		case unicode.IsUpper(r):
			n.asciiTable[i] = lowerByte
		default:
			n.asciiTable[i] = keepByte
		}
	}

	return n
}

// Normalize lower-cases, drops punctuation and collapses whitespace.
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	asciiOnly := true
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			asciiOnly = false
			break
		}
	}
	if !asciiOnly {
		text = norm.NFC.String(text)
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)
	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}

	pendingSpace := false
	appendByte := func(b byte) {
		if pendingSpace {
			*buffer = append(*buffer, ' ')
			pendingSpace = false
		}
		*buffer = append(*buffer, b)
	}
	applyTable := func(b byte) {
		switch n.asciiTable[b] {
		case spaceByte:
			pendingSpace = len(*buffer) > 0
		case dropByte:
		case lowerByte:
			appendByte(b + ('a' - 'A'))
		default:
			appendByte(b)
		}
	}

	if asciiOnly {
		for i := 0; i < len(text); i++ {
			applyTable(text[i])
		}
		return string(*buffer)
	}

	for _, r := range text {
		switch {
		case r < utf8.RuneSelf:
			applyTable(byte(r))
		case unicode.IsSpace(r):
			pendingSpace = len(*buffer) > 0
		case unicode.IsPunct(r):
		default:
			if pendingSpace {
				*buffer = append(*buffer, ' ')
				pendingSpace = false
			}
			*buffer = utf8.AppendRune(*buffer, unicode.ToLower(r))
		}
	}

	return string(*buffer)
}

// NormalizerFactory creates the appropriate normalizer based on performance requirements
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects a normalizer implementation.
type NormalizerType int

const (
	// DefaultNormalizerType is the reference normalizer
	DefaultNormalizerType NormalizerType = iota
	// OptimizedNormalizerType uses buffer pooling and an ASCII decision table
	OptimizedNormalizerType
)

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case OptimizedNormalizerType:
		return NewOptimizedNormalizer()
	default:
		return NewDefaultNormalizer()
	}
}
