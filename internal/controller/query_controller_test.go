package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/pkg/apperror"
	"rag-chat-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test doubles ---

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type stubQueryService struct {
	queryRes *dto.QueryResponse
	queryErr error
	convRes  *dto.GetConversationResponse
	cleared  []string
}

func (s *stubQueryService) Query(ctx context.Context, request *dto.QueryRequest) (*dto.QueryResponse, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.queryRes, nil
}

func (s *stubQueryService) GetConversation(ctx context.Context, sessionId string) (*dto.GetConversationResponse, error) {
	if s.convRes != nil {
		return s.convRes, nil
	}
	return &dto.GetConversationResponse{SessionId: sessionId, Messages: []dto.TurnDTO{}}, nil
}

func (s *stubQueryService) ClearConversation(ctx context.Context, sessionId string) (*dto.ClearConversationResponse, error) {
	s.cleared = append(s.cleared, sessionId)
	return &dto.ClearConversationResponse{SessionId: sessionId, Message: "conversation history cleared"}, nil
}

func newTestApp(svc *stubQueryService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(nopLogger{}))
	NewQueryController(svc).RegisterRoutes(app)
	NewConversationController(svc).RegisterRoutes(app)
	return app
}

// --- Tests ---

func TestQueryEndpointReturnsAnswerAndSources(t *testing.T) {
	svc := &stubQueryService{queryRes: &dto.QueryResponse{
		Answer:    "42",
		Sources:   []dto.SourceDTO{{Source: "a.txt", Score: 1.5}},
		SessionId: "s1",
	}}
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/query",
		strings.NewReader(`{"query":"meaning of life","session_id":"s1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.QueryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "42", body.Answer)
	require.Len(t, body.Sources, 1)
	assert.Equal(t, "a.txt", body.Sources[0].Source)
}

func TestQueryEndpointValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty query", body: `{"query":"","session_id":"s1"}`},
		{name: "missing session id", body: `{"query":"hello"}`},
		{name: "negative top_k rejected", body: `{"query":"hello","session_id":"s1","top_k":-1}`},
		{name: "malformed json", body: `{"query":`},
		{name: "session id too long", body: `{"query":"hi","session_id":"` + strings.Repeat("x", 129) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&stubQueryService{queryRes: &dto.QueryResponse{}})

			req := httptest.NewRequest("POST", "/query", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)

			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestQueryEndpointMapsUpstreamTo502(t *testing.T) {
	svc := &stubQueryService{
		queryErr: apperror.NewUpstream("completion provider unavailable", errors.New("secret detail")),
	}
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/query",
		strings.NewReader(`{"query":"hi","session_id":"s1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	// The wrapped cause stays in the logs, not in the response body.
	bodyBytes, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(bodyBytes), "secret detail")
	assert.Contains(t, string(bodyBytes), "completion provider unavailable")
}

func TestGetConversationEndpoint(t *testing.T) {
	app := newTestApp(&stubQueryService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/conversation/unknown", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.GetConversationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "unknown", body.SessionId)
	assert.Empty(t, body.Messages)
}

func TestDeleteConversationEndpoint(t *testing.T) {
	svc := &stubQueryService{}
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/conversation/s1", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"s1"}, svc.cleared)
}

func TestConversationRejectsOverlongSessionId(t *testing.T) {
	app := newTestApp(&stubQueryService{})
	longId := strings.Repeat("x", 200)

	resp, err := app.Test(httptest.NewRequest("GET", "/conversation/"+longId, nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
