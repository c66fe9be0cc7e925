package ports

import (
	"context"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
)

// DocumentRepository stores the candidate documents used in batch comparisons.
// List returns documents in insertion order.
type DocumentRepository interface {
	Add(ctx context.Context, name, content string) (domain.Candidate, error)
	Get(ctx context.Context, id string) (domain.Candidate, error)
	List(ctx context.Context) ([]domain.Candidate, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
