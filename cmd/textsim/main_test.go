package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "The quick brown fox\njumps over the dog")
	b := writeFile(t, dir, "b.txt", "the quick brown fox\njumps over the lazy dog")

	out := run(t, "compare", a, b)
	assert.Contains(t, out, "Overall similarity:")
	assert.Contains(t, out, "{+lazy +}")

	out = run(t, "compare", "--json", a, b)
	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Passed)
	assert.Len(t, report.LineMatches, 2)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	query := writeFile(t, dir, "q.txt", "hello world")
	far := writeFile(t, dir, "far.txt", "xyz")
	near := writeFile(t, dir, "near.txt", "hello world")

	out := run(t, "batch", "--json", "--rank", query, far, near)
	var scores []domain.CandidateScore
	require.NoError(t, json.Unmarshal([]byte(out), &scores))
	require.Len(t, scores, 2)
	assert.Equal(t, near, scores[0].Name)
	assert.Equal(t, "100.00", scores[0].SimilarityPercentage)
}

func TestDocsCommands(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "docs.db")
	doc := writeFile(t, dir, "doc.txt", "hello world")

	out := run(t, "--db", db, "docs", "add", "greeting", doc)
	assert.Contains(t, out, "Document 'greeting' added")

	out = run(t, "--db", db, "docs", "list", "--json")
	var docs []domain.Candidate
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 1)

	out = run(t, "--db", db, "docs", "compare", "--json", doc)
	var scores []domain.CandidateScore
	require.NoError(t, json.Unmarshal([]byte(out), &scores))
	require.Len(t, scores, 1)
	assert.Equal(t, "100.00", scores[0].SimilarityPercentage)

	out = run(t, "--db", db, "docs", "rm", docs[0].ID)
	assert.Contains(t, out, "deleted successfully")
}
