package main

import (
	"context"
	"flag"
	"os"

	"rag-chat-be/internal/config"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/service"
	"rag-chat-be/pkg/search/azuresearch"

	"github.com/fatih/color"
)

// Out-of-band ingestion: reads plain-text files from the data directory,
// ensures the index exists, and uploads everything in one batch.
func main() {
	cfg := config.Load()

	dataDir := flag.String("dir", cfg.Ingest.DataDir, "directory with .txt documents")
	flag.Parse()

	if cfg.Search.Endpoint == "" || cfg.Search.APIKey == "" {
		color.Red("Error: AZURE_SEARCH_ENDPOINT and AZURE_SEARCH_KEY must be set")
		os.Exit(1)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	searchClient := azuresearch.NewClient(
		cfg.Search.Endpoint,
		cfg.Search.IndexName,
		cfg.Search.APIKey,
		cfg.Search.APIVersion,
	)
	ingestService := service.NewIngestService(searchClient, sysLogger)

	color.Cyan("Starting data ingestion from %s into index %q...", *dataDir, cfg.Search.IndexName)

	report, err := ingestService.Ingest(context.Background(), *dataDir)
	if err != nil {
		color.Red("Ingestion failed: %v", err)
		os.Exit(1)
	}

	if report.Found == 0 {
		color.Yellow("No documents found in %s", *dataDir)
		return
	}

	color.Green("Uploaded %d/%d documents", report.Uploaded, report.Found)
	for _, failure := range report.Failed {
		color.Red("  - %s: %s", failure.Id, failure.Message)
	}
	if len(report.Failed) > 0 {
		os.Exit(1)
	}
}
