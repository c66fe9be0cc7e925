// Package sqlite provides a document repository backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
	"github.com/google/uuid"

	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT UNIQUE NOT NULL,
	name TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`

// Repository stores documents in a SQLite database.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
	path   string
	mu     sync.RWMutex
	closed bool
}

// Open opens (creating if needed) the database at path and prepares the schema.
func Open(ctx context.Context, path string, logger ports.Logger) (*Repository, error) {
	if path == "" {
		return nil, domain.WrapError("open", fmt.Errorf("%w: database path cannot be empty", domain.ErrInvalidConfig))
	}
	if logger == nil {
		return nil, domain.WrapError("open", fmt.Errorf("%w: logger is required", domain.ErrInvalidConfig))
	}

	// busy_timeout: wait up to 5s for a lock instead of failing immediately
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, domain.WrapError("open", fmt.Errorf("failed to open database: %w", err))
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(2 * time.Hour)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, domain.WrapError("open", fmt.Errorf("failed to create tables: %w", err))
	}

	logger.Info("Document store initialized", "path", path)

	return &Repository{db: db, logger: logger, path: path}, nil
}

func (r *Repository) checkOpen(op string) error {
	if r.closed {
		return domain.WrapError(op, domain.ErrStoreClosed)
	}
	return nil
}

// Add stores a new document under a generated ID.
func (r *Repository) Add(ctx context.Context, name, content string) (domain.Candidate, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Candidate{}, domain.WrapError("add", fmt.Errorf("%w: document name is required", domain.ErrInvalidInput))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.checkOpen("add"); err != nil {
		return domain.Candidate{}, err
	}

	doc := domain.Candidate{ID: uuid.NewString(), Name: name, Content: content}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO documents (id, name, content) VALUES (?, ?, ?)",
		doc.ID, doc.Name, doc.Content,
	)
	if err != nil {
		return domain.Candidate{}, domain.WrapError("add", err)
	}

	r.logger.Debug("Document stored", "id", doc.ID, "name", doc.Name, "bytes", len(content))
	return doc, nil
}

// Get returns the document with the given ID.
func (r *Repository) Get(ctx context.Context, id string) (domain.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.checkOpen("get"); err != nil {
		return domain.Candidate{}, err
	}

	var doc domain.Candidate
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, content FROM documents WHERE id = ?", id,
	).Scan(&doc.ID, &doc.Name, &doc.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Candidate{}, domain.WrapError("get", domain.ErrNotFound)
	}
	if err != nil {
		return domain.Candidate{}, domain.WrapError("get", err)
	}
	return doc, nil
}

// List returns all documents in insertion order.
func (r *Repository) List(ctx context.Context) ([]domain.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.checkOpen("list"); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, "SELECT id, name, content FROM documents ORDER BY seq")
	if err != nil {
		return nil, domain.WrapError("list", err)
	}
	defer rows.Close()

	docs := make([]domain.Candidate, 0)
	for rows.Next() {
		var doc domain.Candidate
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.Content); err != nil {
			return nil, domain.WrapError("list", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError("list", err)
	}
	return docs, nil
}

// Delete removes the document with the given ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.checkOpen("delete"); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return domain.WrapError("delete", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.WrapError("delete", err)
	}
	if affected == 0 {
		return domain.WrapError("delete", domain.ErrNotFound)
	}

	r.logger.Debug("Document deleted", "id", id)
	return nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.db.Close()
}
