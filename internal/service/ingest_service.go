package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/pkg/apperror"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/pkg/search"
)

// IIngestService defines the document ingestion interface
type IIngestService interface {
	Ingest(ctx context.Context, dataDir string) (*dto.IngestReport, error)
}

type ingestService struct {
	index search.SearchIndex
	log   logger.ILogger
}

func NewIngestService(index search.SearchIndex, log logger.ILogger) IIngestService {
	return &ingestService{
		index: index,
		log:   log,
	}
}

// Ingest reads every plain-text file under dataDir, ensures the index
// exists, and uploads all documents in one batch. Document ids derive from
// the filename stem, so re-running ingestion overwrites instead of
// duplicating.
func (s *ingestService) Ingest(ctx context.Context, dataDir string) (*dto.IngestReport, error) {
	docs, err := readDocuments(dataDir)
	if err != nil {
		return nil, err
	}

	report := &dto.IngestReport{Found: len(docs)}
	if len(docs) == 0 {
		s.log.Warn("ingest", "no documents found", map[string]interface{}{"dir": dataDir})
		return report, nil
	}

	// Schema mismatch aborts before anything is uploaded.
	if err := s.index.EnsureIndex(ctx); err != nil {
		return nil, apperror.NewUpstream("document index unavailable", err)
	}

	statuses, err := s.index.UploadDocuments(ctx, docs)
	if err != nil {
		return nil, apperror.NewUpstream("document index unavailable", err)
	}

	for _, st := range statuses {
		if st.Succeeded {
			report.Uploaded++
			continue
		}
		report.Failed = append(report.Failed, dto.IngestFailure{
			Id:      st.Key,
			Message: st.Message,
		})
	}

	s.log.Info("ingest", "ingestion completed", map[string]interface{}{
		"found":    report.Found,
		"uploaded": report.Uploaded,
		"failed":   len(report.Failed),
	})
	return report, nil
}

func readDocuments(dataDir string) ([]search.Document, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	var docs []search.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		path := filepath.Join(dataDir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, search.Document{
			Id:      strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Content: string(content),
			Source:  entry.Name(),
		})
	}
	return docs, nil
}
