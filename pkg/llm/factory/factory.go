package factory

import (
	"fmt"

	"rag-chat-be/internal/config"
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/llm/azureopenai"
	"rag-chat-be/pkg/llm/ollama"
)

func NewLLMProvider(cfg *config.Config) (llm.LLMProvider, error) {
	switch cfg.Ai.LLMProvider {
	case "azure":
		if cfg.OpenAI.Endpoint == "" || cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("azure openai endpoint and key are required")
		}
		return azureopenai.NewProvider(
			cfg.OpenAI.Endpoint,
			cfg.OpenAI.Deployment,
			cfg.OpenAI.APIKey,
			cfg.OpenAI.APIVersion,
		), nil
	case "ollama":
		baseURL := cfg.Ai.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewProvider(baseURL, cfg.Ai.OllamaModel), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Ai.LLMProvider)
	}
}
