package azuresearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rag-chat-be/pkg/search"
)

// Client talks to an Azure AI Search style REST service.
type Client struct {
	Endpoint   string // e.g. https://my-service.search.windows.net
	IndexName  string
	APIKey     string
	APIVersion string
	Client     *http.Client
}

// Ensure Client implements SearchIndex
var _ search.SearchIndex = &Client{}

func NewClient(endpoint, indexName, apiKey, apiVersion string) *Client {
	return &Client{
		Endpoint:   strings.TrimRight(endpoint, "/"),
		IndexName:  indexName,
		APIKey:     apiKey,
		APIVersion: apiVersion,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type indexField struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Key        bool   `json:"key,omitempty"`
	Searchable bool   `json:"searchable,omitempty"`
	Filterable bool   `json:"filterable,omitempty"`
}

type indexDefinition struct {
	Name   string       `json:"name"`
	Fields []indexField `json:"fields"`
}

type uploadAction struct {
	Action  string `json:"@search.action"`
	Id      string `json:"id"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

type uploadRequest struct {
	Value []uploadAction `json:"value"`
}

type uploadResponse struct {
	Value []struct {
		Key          string `json:"key"`
		Status       bool   `json:"status"`
		ErrorMessage string `json:"errorMessage"`
		StatusCode   int    `json:"statusCode"`
	} `json:"value"`
}

type searchRequest struct {
	Search string `json:"search"`
	Top    int    `json:"top"`
}

type searchResponse struct {
	Value []struct {
		Score   float64 `json:"@search.score"`
		Id      string  `json:"id"`
		Content string  `json:"content"`
		Source  string  `json:"source"`
	} `json:"value"`
}

// indexSchema is the fixed schema every index managed by this client uses:
// id is the key, content and source are searchable, id and source filterable.
func (c *Client) indexSchema() indexDefinition {
	return indexDefinition{
		Name: c.IndexName,
		Fields: []indexField{
			{Name: "id", Type: "Edm.String", Key: true, Filterable: true},
			{Name: "content", Type: "Edm.String", Searchable: true},
			{Name: "source", Type: "Edm.String", Searchable: true, Filterable: true},
		},
	}
}

// --- Interface Implementation ---

func (c *Client) EnsureIndex(ctx context.Context) error {
	url := fmt.Sprintf("%s/indexes/%s?api-version=%s", c.Endpoint, c.IndexName, c.APIVersion)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("api-key", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("search index request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var existing indexDefinition
		if err := json.Unmarshal(bodyBytes, &existing); err != nil {
			return fmt.Errorf("unmarshal index definition: %w", err)
		}
		return c.verifySchema(existing)
	case http.StatusNotFound:
		return c.createIndex(ctx)
	default:
		return fmt.Errorf("search index error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}
}

// verifySchema checks the existing index against the fixed schema.
// A mismatch is fatal for ingestion.
func (c *Client) verifySchema(existing indexDefinition) error {
	existingTypes := make(map[string]string, len(existing.Fields))
	for _, f := range existing.Fields {
		existingTypes[f.Name] = f.Type
	}
	for _, want := range c.indexSchema().Fields {
		got, ok := existingTypes[want.Name]
		if !ok {
			return fmt.Errorf("index %q schema mismatch: missing field %q", c.IndexName, want.Name)
		}
		if got != want.Type {
			return fmt.Errorf("index %q schema mismatch: field %q is %s, want %s",
				c.IndexName, want.Name, got, want.Type)
		}
	}
	return nil
}

func (c *Client) createIndex(ctx context.Context) error {
	payloadBytes, err := json.Marshal(c.indexSchema())
	if err != nil {
		return fmt.Errorf("marshal index definition: %w", err)
	}

	url := fmt.Sprintf("%s/indexes/%s?api-version=%s", c.Endpoint, c.IndexName, c.APIVersion)
	req, err := http.NewRequestWithContext(ctx, "PUT", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("search index request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("create index error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

func (c *Client) UploadDocuments(ctx context.Context, docs []search.Document) ([]search.UploadStatus, error) {
	actions := make([]uploadAction, len(docs))
	for i, doc := range docs {
		actions[i] = uploadAction{
			Action:  "mergeOrUpload", // idempotent by id
			Id:      doc.Id,
			Content: doc.Content,
			Source:  doc.Source,
		}
	}

	payloadBytes, err := json.Marshal(uploadRequest{Value: actions})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/indexes/%s/docs/index?api-version=%s", c.Endpoint, c.IndexName, c.APIVersion)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search index request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	// 207 signals partial failure; per-document statuses carry the detail.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusMultiStatus {
		return nil, fmt.Errorf("upload error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var uploadResp uploadResponse
	if err := json.Unmarshal(bodyBytes, &uploadResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	statuses := make([]search.UploadStatus, len(uploadResp.Value))
	for i, item := range uploadResp.Value {
		statuses[i] = search.UploadStatus{
			Key:       item.Key,
			Succeeded: item.Status,
			Message:   item.ErrorMessage,
		}
	}
	return statuses, nil
}

func (c *Client) Search(ctx context.Context, query string, topK int) ([]search.Result, error) {
	payloadBytes, err := json.Marshal(searchRequest{Search: query, Top: topK})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s", c.Endpoint, c.IndexName, c.APIVersion)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var searchResp searchResponse
	if err := json.Unmarshal(bodyBytes, &searchResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	// Keep the order the index returned; callers must not re-sort.
	results := make([]search.Result, len(searchResp.Value))
	for i, item := range searchResp.Value {
		results[i] = search.Result{
			Document: search.Document{
				Id:      item.Id,
				Content: item.Content,
				Source:  item.Source,
			},
			Score: item.Score,
		}
	}
	return results, nil
}
