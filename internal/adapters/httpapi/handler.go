// Package httpapi exposes the similarity engine over HTTP with fasthttp.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/baditaflorin/go_text_similarity/internal/core/metrics"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
	"github.com/valyala/fasthttp"
)

// DefaultRequestTimeout bounds the computation of a single request.
const DefaultRequestTimeout = 30 * time.Second

// Compare modes.
const (
	ModeDetailed = "detailed"
	ModeBatch    = "batch"
)

// Service is the engine surface the handler needs.
type Service interface {
	Compare(ctx context.Context, a, b string) (domain.Report, error)
	CompareAgainstCandidates(ctx context.Context, query string, candidates []domain.Candidate) ([]domain.CandidateScore, error)
	CompareStored(ctx context.Context, query string) ([]domain.CandidateScore, error)
	CompareWithStored(ctx context.Context, text, id string) (domain.Report, error)
	Documents() ports.DocumentRepository
}

// CompareRequest is the body of POST /compare.
type CompareRequest struct {
	Mode       string             `json:"mode,omitempty"`
	Text       json.RawMessage    `json:"text"`
	Other      json.RawMessage    `json:"other,omitempty"`
	Candidates []domain.Candidate `json:"candidates,omitempty"`
	Rank       bool               `json:"rank,omitempty"`
}

// DocumentRequest is the body of POST /documents.
type DocumentRequest struct {
	Name    string          `json:"name"`
	Content json.RawMessage `json:"content"`
}

// StoredCompareRequest is the body of POST /documents/compare.
type StoredCompareRequest struct {
	Text json.RawMessage `json:"text"`
	ID   string          `json:"id,omitempty"`
	Rank bool            `json:"rank,omitempty"`
}

// BatchResponse wraps the batch-mode results.
type BatchResponse struct {
	Results []domain.CandidateScore `json:"results"`
}

// DocumentsResponse wraps the stored documents.
type DocumentsResponse struct {
	Documents []domain.Candidate `json:"documents"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler routes requests to the similarity service.
type Handler struct {
	service Service
	logger  ports.Logger
	timeout time.Duration
}

// Option configures a Handler.
type Option func(*Handler)

// WithRequestTimeout sets the per-request computation timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// NewHandler creates a handler for service.
func NewHandler(service Service, logger ports.Logger, opts ...Option) (*Handler, error) {
	if service == nil {
		return nil, errors.New("service is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	h := &Handler{
		service: service,
		logger:  logger,
		timeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Handle is the fasthttp request handler.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	// Set common headers
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "TextSimilarityServer")

	path := string(ctx.Path())
	switch {
	case path == "/health":
		h.handleHealthCheck(ctx)
	case path == "/compare":
		h.handleCompare(ctx)
	case path == "/documents":
		h.handleDocuments(ctx)
	case path == "/documents/compare":
		h.handleStoredCompare(ctx)
	case strings.HasPrefix(path, "/documents/"):
		h.handleDocument(ctx, strings.TrimPrefix(path, "/documents/"))
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		h.writeJSONError(ctx, "Not found")
	}

	// Log request
	h.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", path,
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleHealthCheck responds to health check requests
func (h *Handler) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) handleCompare(ctx *fasthttp.RequestCtx) {
	if !h.requireMethod(ctx, fasthttp.MethodPost) {
		return
	}

	var req CompareRequest
	if !h.decode(ctx, &req) {
		return
	}
	text, err := domain.TextOf(req.Text)
	if err != nil {
		h.writeError(ctx, fmt.Errorf("text: %w", err))
		return
	}

	c, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	switch req.Mode {
	case "", ModeDetailed:
		other, err := domain.TextOf(req.Other)
		if err != nil {
			h.writeError(ctx, fmt.Errorf("other: %w", err))
			return
		}
		report, err := h.service.Compare(c, text, other)
		if err != nil {
			h.writeError(ctx, err)
			return
		}
		ctx.SetStatusCode(fasthttp.StatusOK)
		h.writeJSONResponse(ctx, report)
	case ModeBatch:
		scores, err := h.service.CompareAgainstCandidates(c, text, req.Candidates)
		if err != nil {
			h.writeError(ctx, err)
			return
		}
		h.writeBatch(ctx, scores, req.Rank)
	default:
		h.writeError(ctx, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidInput, req.Mode))
	}
}

func (h *Handler) handleDocuments(ctx *fasthttp.RequestCtx) {
	c, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	switch {
	case ctx.IsGet():
		docs, err := h.service.Documents().List(c)
		if err != nil {
			h.writeError(ctx, err)
			return
		}
		ctx.SetStatusCode(fasthttp.StatusOK)
		h.writeJSONResponse(ctx, DocumentsResponse{Documents: docs})
	case ctx.IsPost():
		var req DocumentRequest
		if !h.decode(ctx, &req) {
			return
		}
		content, err := domain.TextOf(req.Content)
		if err != nil {
			h.writeError(ctx, fmt.Errorf("content: %w", err))
			return
		}
		doc, err := h.service.Documents().Add(c, req.Name, content)
		if err != nil {
			h.writeError(ctx, err)
			return
		}
		ctx.SetStatusCode(fasthttp.StatusCreated)
		h.writeJSONResponse(ctx, doc)
	default:
		h.methodNotAllowed(ctx)
	}
}

func (h *Handler) handleDocument(ctx *fasthttp.RequestCtx, id string) {
	c, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	switch {
	case ctx.IsGet():
		doc, err := h.service.Documents().Get(c, id)
		if err != nil {
			h.writeError(ctx, err)
			return
		}
		ctx.SetStatusCode(fasthttp.StatusOK)
		h.writeJSONResponse(ctx, doc)
	case ctx.IsDelete():
		if err := h.service.Documents().Delete(c, id); err != nil {
			h.writeError(ctx, err)
			return
		}
		ctx.SetStatusCode(fasthttp.StatusOK)
		h.writeJSONResponse(ctx, map[string]string{"deleted": id})
	default:
		h.methodNotAllowed(ctx)
	}
}

func (h *Handler) handleStoredCompare(ctx *fasthttp.RequestCtx) {
	if !h.requireMethod(ctx, fasthttp.MethodPost) {
		return
	}

	var req StoredCompareRequest
	if !h.decode(ctx, &req) {
		return
	}
	text, err := domain.TextOf(req.Text)
	if err != nil {
		h.writeError(ctx, fmt.Errorf("text: %w", err))
		return
	}

	c, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if req.ID != "" {
		report, err := h.service.CompareWithStored(c, text, req.ID)
		if err != nil {
			h.writeError(ctx, err)
			return
		}
		ctx.SetStatusCode(fasthttp.StatusOK)
		h.writeJSONResponse(ctx, report)
		return
	}

	scores, err := h.service.CompareStored(c, text)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeBatch(ctx, scores, req.Rank)
}

// Helper functions

func (h *Handler) writeBatch(ctx *fasthttp.RequestCtx, scores []domain.CandidateScore, rank bool) {
	if rank {
		scores = metrics.Rank(scores)
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, BatchResponse{Results: scores})
}

func (h *Handler) requireMethod(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) != method {
		h.methodNotAllowed(ctx)
		return false
	}
	return true
}

func (h *Handler) methodNotAllowed(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
	h.writeJSONError(ctx, "Method not allowed")
}

func (h *Handler) decode(ctx *fasthttp.RequestCtx, v interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, "Invalid request: "+err.Error())
		return false
	}
	return true
}

// StatusFor maps an engine error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fasthttp.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fasthttp.StatusNotFound
	default:
		return fasthttp.StatusInternalServerError
	}
}

func (h *Handler) writeError(ctx *fasthttp.RequestCtx, err error) {
	status := StatusFor(err)
	if status == fasthttp.StatusInternalServerError {
		h.logger.Error("Request failed", "path", string(ctx.Path()), "error", err)
	}
	ctx.SetStatusCode(status)
	h.writeJSONError(ctx, err.Error())
}

// writeJSONResponse writes a JSON response to the context
func (h *Handler) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.logger.Error("Error marshaling JSON response", "error", err)
		h.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (h *Handler) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}
