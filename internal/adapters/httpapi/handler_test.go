package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/baditaflorin/go_text_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/baditaflorin/go_text_similarity/pkg/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func newTestHandler(t *testing.T) (*Handler, *similarity.Similarity) {
	t.Helper()
	svc, err := similarity.New(similarity.WithLoggerAdapter(logger.NewNopLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	h, err := NewHandler(svc, logger.NewNopLogger())
	require.NoError(t, err)
	return h, svc
}

func do(h *Handler, method, uri, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	req.SetBodyString(body)

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	h.Handle(ctx)
	return ctx
}

func decodeBody(t *testing.T, ctx *fasthttp.RequestCtx, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), v))
}

func TestNewHandlerValidation(t *testing.T) {
	_, err := NewHandler(nil, logger.NewNopLogger())
	assert.Error(t, err)

	svc, err := similarity.New(similarity.WithLoggerAdapter(logger.NewNopLogger()))
	require.NoError(t, err)
	defer svc.Close()
	_, err = NewHandler(svc, nil)
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := do(h, fasthttp.MethodGet, "/health", "")

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var body map[string]interface{}
	decodeBody(t, ctx, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestCompareDetailed(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := do(h, fasthttp.MethodPost, "/compare", `{"text":"Hello, World!","other":"hello world"}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var report domain.Report
	decodeBody(t, ctx, &report)
	assert.InDelta(t, 1.0, report.Overall, 1e-9)
	assert.True(t, report.Passed)
	assert.Len(t, report.WordMatches, 2)
	assert.Len(t, report.LineMatches, 1)
}

func TestCompareBatch(t *testing.T) {
	h, _ := newTestHandler(t)
	body := `{"mode":"batch","text":"hello world","candidates":[{"id":"1","name":"A","content":"xyz"},{"id":"2","name":"B","content":"hello world"}]}`

	ctx := do(h, fasthttp.MethodPost, "/compare", body)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var resp BatchResponse
	decodeBody(t, ctx, &resp)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "1", resp.Results[0].ID)
	assert.Equal(t, "100.00", resp.Results[1].SimilarityPercentage)

	ranked := do(h, fasthttp.MethodPost, "/compare", body[:len(body)-1]+`,"rank":true}`)
	decodeBody(t, ranked, &resp)
	assert.Equal(t, "2", resp.Results[0].ID)
}

func TestCompareBatchNumericIDs(t *testing.T) {
	h, _ := newTestHandler(t)
	body := `{"mode":"batch","text":"hello world","candidates":[{"id":1,"name":"A","content":"hello world"},{"id":"b","name":"B","content":"xyz"}]}`

	ctx := do(h, fasthttp.MethodPost, "/compare", body)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var resp BatchResponse
	decodeBody(t, ctx, &resp)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "1", resp.Results[0].ID)
	assert.Equal(t, "b", resp.Results[1].ID)

	bad := do(h, fasthttp.MethodPost, "/compare", `{"mode":"batch","text":"x","candidates":[{"id":true,"content":"x"}]}`)
	assert.Equal(t, fasthttp.StatusBadRequest, bad.Response.StatusCode())
}

func TestCompareErrors(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{"wrong method", fasthttp.MethodGet, "", fasthttp.StatusMethodNotAllowed},
		{"malformed json", fasthttp.MethodPost, `{`, fasthttp.StatusBadRequest},
		{"non-text input", fasthttp.MethodPost, `{"text":42,"other":"x"}`, fasthttp.StatusBadRequest},
		{"non-text other", fasthttp.MethodPost, `{"text":"x","other":["a"]}`, fasthttp.StatusBadRequest},
		{"unknown mode", fasthttp.MethodPost, `{"mode":"fuzzy","text":"x"}`, fasthttp.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := do(h, tc.method, "/compare", tc.body)
			assert.Equal(t, tc.status, ctx.Response.StatusCode())
			var resp ErrorResponse
			decodeBody(t, ctx, &resp)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestDocumentsLifecycle(t *testing.T) {
	h, _ := newTestHandler(t)

	created := do(h, fasthttp.MethodPost, "/documents", `{"name":"greeting","content":"hello world"}`)
	require.Equal(t, fasthttp.StatusCreated, created.Response.StatusCode())
	var doc domain.Candidate
	decodeBody(t, created, &doc)
	require.NotEmpty(t, doc.ID)

	other := do(h, fasthttp.MethodPost, "/documents", `{"name":"farewell","content":"goodbye moon"}`)
	require.Equal(t, fasthttp.StatusCreated, other.Response.StatusCode())

	list := do(h, fasthttp.MethodGet, "/documents", "")
	var docs DocumentsResponse
	decodeBody(t, list, &docs)
	require.Len(t, docs.Documents, 2)
	assert.Equal(t, doc.ID, docs.Documents[0].ID)

	batch := do(h, fasthttp.MethodPost, "/documents/compare", `{"text":"hello world"}`)
	require.Equal(t, fasthttp.StatusOK, batch.Response.StatusCode())
	var scores BatchResponse
	decodeBody(t, batch, &scores)
	require.Len(t, scores.Results, 2)
	assert.Equal(t, "100.00", scores.Results[0].SimilarityPercentage)

	detailed := do(h, fasthttp.MethodPost, "/documents/compare", fmt.Sprintf(`{"text":"hello world","id":%q}`, doc.ID))
	require.Equal(t, fasthttp.StatusOK, detailed.Response.StatusCode())
	var report domain.Report
	decodeBody(t, detailed, &report)
	assert.InDelta(t, 1.0, report.Overall, 1e-9)

	got := do(h, fasthttp.MethodGet, "/documents/"+doc.ID, "")
	assert.Equal(t, fasthttp.StatusOK, got.Response.StatusCode())

	deleted := do(h, fasthttp.MethodDelete, "/documents/"+doc.ID, "")
	assert.Equal(t, fasthttp.StatusOK, deleted.Response.StatusCode())

	missing := do(h, fasthttp.MethodDelete, "/documents/"+doc.ID, "")
	assert.Equal(t, fasthttp.StatusNotFound, missing.Response.StatusCode())

	missingCompare := do(h, fasthttp.MethodPost, "/documents/compare", fmt.Sprintf(`{"text":"x","id":%q}`, doc.ID))
	assert.Equal(t, fasthttp.StatusNotFound, missingCompare.Response.StatusCode())
}

func TestDocumentsValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/documents", `{"name":"","content":"text"}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	ctx = do(h, fasthttp.MethodPut, "/documents", "")
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
}

func TestNotFoundRoute(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := do(h, fasthttp.MethodGet, "/nope", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fasthttp.StatusBadRequest, StatusFor(domain.WrapError("compare", domain.ErrInvalidInput)))
	assert.Equal(t, fasthttp.StatusNotFound, StatusFor(fmt.Errorf("get: %w", domain.ErrNotFound)))
	assert.Equal(t, fasthttp.StatusInternalServerError, StatusFor(errors.New("boom")))
}
