package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"rag-chat-be/internal/pkg/apperror"
	"rag-chat-be/pkg/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUploadIndex struct {
	ensureErr error
	uploadErr error
	statuses  []search.UploadStatus

	ensureCalls int
	uploaded    []search.Document
}

func (m *mockUploadIndex) EnsureIndex(ctx context.Context) error {
	m.ensureCalls++
	return m.ensureErr
}

func (m *mockUploadIndex) UploadDocuments(ctx context.Context, docs []search.Document) ([]search.UploadStatus, error) {
	m.uploaded = docs
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	if m.statuses != nil {
		return m.statuses, nil
	}
	statuses := make([]search.UploadStatus, len(docs))
	for i, doc := range docs {
		statuses[i] = search.UploadStatus{Key: doc.Id, Succeeded: true}
	}
	return statuses, nil
}

func (m *mockUploadIndex) Search(ctx context.Context, query string, topK int) ([]search.Result, error) {
	return nil, nil
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestIngestReadsOnlyTextFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alpha.txt", "alpha content")
	writeFile(t, dir, "beta.txt", "beta content")
	writeFile(t, dir, "notes.md", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0755)) // dir, not a file

	index := &mockUploadIndex{}
	svc := NewIngestService(index, nopLogger{})

	report, err := svc.Ingest(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, 2, report.Found)
	assert.Equal(t, 2, report.Uploaded)
	require.Len(t, index.uploaded, 2)
	assert.Equal(t, "alpha", index.uploaded[0].Id)
	assert.Equal(t, "alpha.txt", index.uploaded[0].Source)
	assert.Equal(t, "alpha content", index.uploaded[0].Content)
}

func TestIngestEmptyDirectorySkipsUpload(t *testing.T) {
	index := &mockUploadIndex{}
	svc := NewIngestService(index, nopLogger{})

	report, err := svc.Ingest(context.Background(), t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, 0, report.Found)
	assert.Equal(t, 0, index.ensureCalls)
	assert.Nil(t, index.uploaded)
}

func TestIngestMissingDirectoryFails(t *testing.T) {
	svc := NewIngestService(&mockUploadIndex{}, nopLogger{})

	_, err := svc.Ingest(context.Background(), "/nonexistent/path")

	assert.Error(t, err)
}

func TestIngestSchemaMismatchAbortsBeforeUpload(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.txt", "content")

	index := &mockUploadIndex{ensureErr: errors.New("schema mismatch")}
	svc := NewIngestService(index, nopLogger{})

	_, err := svc.Ingest(context.Background(), dir)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindUpstream, appErr.Kind)
	assert.Nil(t, index.uploaded)
}

func TestIngestReportsPartialFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.txt", "fine")
	writeFile(t, dir, "bad.txt", "rejected")

	index := &mockUploadIndex{statuses: []search.UploadStatus{
		{Key: "good", Succeeded: true},
		{Key: "bad", Succeeded: false, Message: "key rejected"},
	}}
	svc := NewIngestService(index, nopLogger{})

	report, err := svc.Ingest(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, 2, report.Found)
	assert.Equal(t, 1, report.Uploaded)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "bad", report.Failed[0].Id)
	assert.Equal(t, "key rejected", report.Failed[0].Message)
}
