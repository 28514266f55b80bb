package azureopenai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rag-chat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(ts *httptest.Server) *Provider {
	p := NewProvider(ts.URL, "gpt-4o", "test-key", "2023-05-15")
	p.Client = ts.Client()
	return p
}

func TestChatReturnsCompletion(t *testing.T) {
	var gotBody chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/deployments/gpt-4o/chat/completions", r.URL.Path)
		assert.Equal(t, "2023-05-15", r.URL.Query().Get("api-version"))
		assert.Equal(t, "test-key", r.Header.Get("api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello there"}}]}`))
	}))
	defer ts.Close()

	answer, err := newTestProvider(ts).Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "be helpful"},
		{Role: "user", Content: "hi"},
	}, llm.WithMaxTokens(500), llm.WithTemperature(0.7))

	require.NoError(t, err)
	assert.Equal(t, "hello there", answer)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, 500, gotBody.MaxTokens)
	assert.InDelta(t, 0.7, gotBody.Temperature, 0.001)
}

func TestChatMapsModelRoleToAssistant(t *testing.T) {
	var gotBody chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer ts.Close()

	_, err := newTestProvider(ts).Chat(context.Background(), []llm.Message{
		{Role: "model", Content: "previous answer"},
	})

	require.NoError(t, err)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "assistant", gotBody.Messages[0].Role)
}

func TestChatSurfacesAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":"429","message":"rate limited"}}`))
	}))
	defer ts.Close()

	_, err := newTestProvider(ts).Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestChatFailsOnEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	_, err := newTestProvider(ts).Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestGenerateWrapsSinglePrompt(t *testing.T) {
	var gotBody chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer ts.Close()

	_, err := newTestProvider(ts).Generate(context.Background(), "one-shot prompt")

	require.NoError(t, err)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
	assert.Equal(t, "one-shot prompt", gotBody.Messages[0].Content)
}
