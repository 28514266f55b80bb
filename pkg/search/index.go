package search

import (
	"context"
)

// Document is one indexed record. Documents are immutable after upload and
// owned by the external index service.
type Document struct {
	Id      string `json:"id"`
	Content string `json:"content"`
	Source  string `json:"source"` // origin filename
}

// Result pairs a document with the relevance score assigned by the index.
type Result struct {
	Document Document
	Score    float64
}

// UploadStatus reports the per-document outcome of a batch upload.
// Failed documents do not roll back successful ones: the index is
// idempotent under re-upload by id.
type UploadStatus struct {
	Key       string
	Succeeded bool
	Message   string
}

// SearchIndex defines the contract for the external document index service
type SearchIndex interface {
	// EnsureIndex creates the index with the fixed schema if it does not
	// exist. An existing index with a different schema is an error.
	EnsureIndex(ctx context.Context) error

	// UploadDocuments uploads one batch and returns per-document statuses.
	UploadDocuments(ctx context.Context, docs []Document) ([]UploadStatus, error)

	// Search runs a keyword query and returns up to topK results ordered by
	// descending relevance. Ordering and tie-breaks belong to the index.
	Search(ctx context.Context, query string, topK int) ([]Result, error)
}
