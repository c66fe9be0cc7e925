// Package memory provides an in-process document repository.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/google/uuid"
)

// Repository keeps documents in memory in insertion order.
type Repository struct {
	mu     sync.RWMutex
	docs   map[string]domain.Candidate
	order  []string
	closed bool
}

// New creates an empty repository.
func New() *Repository {
	return &Repository{
		docs: make(map[string]domain.Candidate),
	}
}

// Add stores a new document under a generated ID.
func (r *Repository) Add(ctx context.Context, name, content string) (domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Candidate{}, err
	}
	if strings.TrimSpace(name) == "" {
		return domain.Candidate{}, domain.WrapError("add", fmt.Errorf("%w: document name is required", domain.ErrInvalidInput))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return domain.Candidate{}, domain.WrapError("add", domain.ErrStoreClosed)
	}

	doc := domain.Candidate{ID: uuid.NewString(), Name: name, Content: content}
	r.docs[doc.ID] = doc
	r.order = append(r.order, doc.ID)
	return doc, nil
}

// Get returns the document with the given ID.
func (r *Repository) Get(ctx context.Context, id string) (domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Candidate{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return domain.Candidate{}, domain.WrapError("get", domain.ErrStoreClosed)
	}

	doc, ok := r.docs[id]
	if !ok {
		return domain.Candidate{}, domain.WrapError("get", domain.ErrNotFound)
	}
	return doc, nil
}

// List returns all documents in insertion order.
func (r *Repository) List(ctx context.Context) ([]domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, domain.WrapError("list", domain.ErrStoreClosed)
	}

	docs := make([]domain.Candidate, 0, len(r.order))
	for _, id := range r.order {
		docs = append(docs, r.docs[id])
	}
	return docs, nil
}

// Delete removes the document with the given ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return domain.WrapError("delete", domain.ErrStoreClosed)
	}
	if _, ok := r.docs[id]; !ok {
		return domain.WrapError("delete", domain.ErrNotFound)
	}

	delete(r.docs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Close marks the repository closed. Further calls return ErrStoreClosed.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}
