// Package source reads comparison inputs from streams and files.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/baditaflorin/go_text_similarity/internal/pool"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
)

// DefaultChunkSize defines the default size of each read
const DefaultChunkSize = 8192 // 8KB

// Stats describes a completed read.
type Stats struct {
	BytesRead int64
	Truncated bool
	Duration  time.Duration
}

// Reader reads whole texts in chunks, honoring cancellation and an optional byte cap.
type Reader struct {
	logger     ports.Logger
	bufferPool *pool.BufferPool
	chunkSize  int
	maxBytes   int64
}

// NewReader creates a reader. A maxBytes of zero disables the cap.
func NewReader(logger ports.Logger, maxBytes int64) *Reader {
	return &Reader{
		logger:     logger,
		bufferPool: pool.NewBufferPool(DefaultChunkSize),
		chunkSize:  DefaultChunkSize,
		maxBytes:   maxBytes,
	}
}

// WithChunkSize sets a custom chunk size for the reader
func (r *Reader) WithChunkSize(size int) *Reader {
	if size > 0 {
		r.chunkSize = size
	}
	return r
}

// ReadText reads reader to EOF. Input beyond the byte cap is discarded at a
// rune boundary and reported in Stats. Invalid UTF-8 is rejected with
// domain.ErrInvalidInput.
func (r *Reader) ReadText(ctx context.Context, reader io.Reader) (string, Stats, error) {
	start := time.Now()
	stats := Stats{}

	buffer := r.bufferPool.Get()
	defer r.bufferPool.Put(buffer)
	if cap(*buffer) < r.chunkSize {
		*buffer = make([]byte, r.chunkSize)
	}

	var sb strings.Builder
	for {
		select {
		case <-ctx.Done():
			r.logger.Warn("Read cancelled by context", "error", ctx.Err())
			return "", stats, ctx.Err()
		default:
		}

		*buffer = (*buffer)[:r.chunkSize]
		n, err := reader.Read(*buffer)
		if n > 0 {
			chunk := (*buffer)[:n]
			if r.maxBytes > 0 && stats.BytesRead+int64(n) > r.maxBytes {
				chunk = chunk[:r.maxBytes-stats.BytesRead]
				stats.Truncated = true
			}
			sb.Write(chunk)
			stats.BytesRead += int64(len(chunk))
		}

		if stats.Truncated {
			break
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			r.logger.Error("Error reading input", "error", err)
			return "", stats, err
		}
	}

	text := sb.String()
	if stats.Truncated {
		text = trimPartialRune(text)
		stats.BytesRead = int64(len(text))
		r.logger.Warn("Input truncated", "max_bytes", r.maxBytes)
	}
	if !utf8.ValidString(text) {
		return "", stats, fmt.Errorf("%w: input is not valid UTF-8", domain.ErrInvalidInput)
	}

	stats.Duration = time.Since(start)
	r.logger.Debug("Read input", "bytes", stats.BytesRead, "truncated", stats.Truncated, "duration", stats.Duration)
	return text, stats, nil
}

// ReadFile reads the file at path; "-" reads standard input.
func (r *Reader) ReadFile(ctx context.Context, path string) (string, Stats, error) {
	if path == "-" {
		return r.ReadText(ctx, os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", Stats{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return r.ReadText(ctx, f)
}

// trimPartialRune drops an incomplete UTF-8 sequence left at the end by truncation.
func trimPartialRune(s string) string {
	for i := 0; i < utf8.UTFMax && len(s) > 0; i++ {
		r, size := utf8.DecodeLastRuneInString(s)
		if r != utf8.RuneError || size != 1 {
			return s
		}
		s = s[:len(s)-1]
	}
	return s
}
