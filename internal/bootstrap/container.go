package bootstrap

import (
	"context"
	"log"
	"time"

	"rag-chat-be/internal/config"
	"rag-chat-be/internal/controller"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/internal/repository/memory"
	redisrepo "rag-chat-be/internal/repository/redis"
	"rag-chat-be/internal/service"
	"rag-chat-be/pkg/llm/factory"
	"rag-chat-be/pkg/search/azuresearch"

	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	QueryController        controller.IQueryController
	ConversationController controller.IConversationController

	// Exposed for the ingestion CLI and tests
	IngestService service.IIngestService
	Logger        logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Upstream clients
	searchClient := azuresearch.NewClient(
		cfg.Search.Endpoint,
		cfg.Search.IndexName,
		cfg.Search.APIKey,
		cfg.Search.APIVersion,
	)

	llmProvider, err := factory.NewLLMProvider(cfg)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s", cfg.Ai.LLMProvider)

	// 3. Conversation store, selected by config
	var convRepo contract.ConversationRepository
	switch cfg.Store.Backend {
	case "redis":
		opt, err := redis.ParseURL(cfg.Store.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.Store.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		convRepo = redisrepo.NewConversationRepository(rdb)
		log.Printf("[INFO] Using Conversation Store: REDIS")
	case "cache":
		ttl := time.Duration(cfg.Store.SessionTTLMinutes) * time.Minute
		convRepo = memory.NewCachedConversationRepository(ttl)
		log.Printf("[INFO] Using Conversation Store: CACHE (TTL %s)", ttl)
	default:
		convRepo = memory.NewConversationRepository()
		log.Printf("[INFO] Using Conversation Store: MEMORY")
	}

	// 4. Services
	queryService := service.NewQueryService(searchClient, llmProvider, convRepo, sysLogger)
	ingestService := service.NewIngestService(searchClient, sysLogger)

	// 5. Controllers
	return &Container{
		QueryController:        controller.NewQueryController(queryService),
		ConversationController: controller.NewConversationController(queryService),
		IngestService:          ingestService,
		Logger:                 sysLogger,
	}
}
