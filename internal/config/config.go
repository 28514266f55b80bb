package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Search SearchConfig
	OpenAI OpenAIConfig
	Ai     AIConfig
	Store  StoreConfig
	Ingest IngestConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type SearchConfig struct {
	Endpoint   string
	APIKey     string
	IndexName  string
	APIVersion string
}

type OpenAIConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
}

type AIConfig struct {
	LLMProvider   string // "azure" or "ollama"
	OllamaBaseURL string
	OllamaModel   string
}

type StoreConfig struct {
	Backend           string // "memory", "cache" or "redis"
	RedisURL          string
	SessionTTLMinutes int // only for the "cache" backend
}

type IngestConfig struct {
	DataDir string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Search: SearchConfig{
			Endpoint:   getEnv("AZURE_SEARCH_ENDPOINT", ""),
			APIKey:     getEnv("AZURE_SEARCH_KEY", ""),
			IndexName:  getEnv("AZURE_SEARCH_INDEX_NAME", "documents-index"),
			APIVersion: getEnv("AZURE_SEARCH_API_VERSION", "2023-11-01"),
		},
		OpenAI: OpenAIConfig{
			Endpoint:   getEnv("AZURE_OPENAI_ENDPOINT", ""),
			APIKey:     getEnv("AZURE_OPENAI_KEY", ""),
			Deployment: getEnv("AZURE_OPENAI_DEPLOYMENT_NAME", ""),
			APIVersion: getEnv("AZURE_OPENAI_API_VERSION", "2023-05-15"),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "azure"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:   getEnv("OLLAMA_MODEL", "llama3"),
		},
		Store: StoreConfig{
			Backend:           getEnv("CONVERSATION_STORE", "memory"),
			RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
			SessionTTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 60),
		},
		Ingest: IngestConfig{
			DataDir: getEnv("DATA_DIR", "./data"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
