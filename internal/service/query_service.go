package service

import (
	"context"
	"strings"

	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/pkg/apperror"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/rag/prompt"
	"rag-chat-be/pkg/search"
	"rag-chat-be/pkg/store"
)

const (
	defaultTopK = 3

	// Completion parameters for one answer
	answerMaxTokens   = 500
	answerTemperature = 0.7
)

// IQueryService defines the query orchestration interface
type IQueryService interface {
	Query(ctx context.Context, request *dto.QueryRequest) (*dto.QueryResponse, error)
	GetConversation(ctx context.Context, sessionId string) (*dto.GetConversationResponse, error)
	ClearConversation(ctx context.Context, sessionId string) (*dto.ClearConversationResponse, error)
}

// queryService runs one request as a straight-line sequence: search the
// index, assemble the prompt, call the completion provider, then record the
// exchange. Fail fast, no retries.
type queryService struct {
	index       search.SearchIndex
	llmProvider llm.LLMProvider
	convRepo    contract.ConversationRepository
	log         logger.ILogger
}

func NewQueryService(
	index search.SearchIndex,
	llmProvider llm.LLMProvider,
	convRepo contract.ConversationRepository,
	log logger.ILogger,
) IQueryService {
	return &queryService{
		index:       index,
		llmProvider: llmProvider,
		convRepo:    convRepo,
		log:         log,
	}
}

func (s *queryService) Query(ctx context.Context, request *dto.QueryRequest) (*dto.QueryResponse, error) {
	query := strings.TrimSpace(request.Query)
	if query == "" {
		return nil, apperror.NewInvalidInput("query must not be empty")
	}

	topK := request.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	// 1. Keyword search. Result order is the index's ranking and is kept
	// as-is all the way to the response.
	results, err := s.index.Search(ctx, query, topK)
	if err != nil {
		return nil, apperror.NewUpstream("document index unavailable", err)
	}

	// 2. Load history. Truncation to the most recent turns happens inside
	// the prompt builder and never touches the stored sequence.
	history, err := s.convRepo.Get(ctx, request.SessionId)
	if err != nil {
		return nil, apperror.NewInternal("conversation store failure", err)
	}

	builder := prompt.NewBuilder(history, results, query)

	// 3. Completion. No results is not an error: the provider answers from
	// an empty context, degraded but valid.
	answer, err := s.llmProvider.Chat(ctx, builder.Messages(),
		llm.WithMaxTokens(answerMaxTokens),
		llm.WithTemperature(answerTemperature),
	)
	if err != nil {
		// Both-or-neither: a failed completion stores no turns at all.
		return nil, apperror.NewUpstream("completion provider unavailable", err)
	}

	// 4. Record the exchange as one atomic pair.
	userTurn := store.NewTurn(store.RoleUser, query)
	assistantTurn := store.NewTurn(store.RoleAssistant, answer)
	if err := s.convRepo.Append(ctx, request.SessionId, userTurn, assistantTurn); err != nil {
		return nil, apperror.NewInternal("conversation store failure", err)
	}

	s.log.Info("query", "answered query", map[string]interface{}{
		"session_id": request.SessionId,
		"top_k":      topK,
		"sources":    len(results),
	})

	sources := make([]dto.SourceDTO, len(results))
	for i, r := range results {
		sources[i] = dto.SourceDTO{
			Source: r.Document.Source,
			Score:  r.Score,
		}
	}

	return &dto.QueryResponse{
		Answer:    answer,
		Sources:   sources,
		SessionId: request.SessionId,
	}, nil
}

func (s *queryService) GetConversation(ctx context.Context, sessionId string) (*dto.GetConversationResponse, error) {
	turns, err := s.convRepo.Get(ctx, sessionId)
	if err != nil {
		return nil, apperror.NewInternal("conversation store failure", err)
	}

	messages := make([]dto.TurnDTO, len(turns))
	for i, turn := range turns {
		messages[i] = dto.TurnDTO{
			Id:        turn.Id,
			Role:      turn.Role,
			Text:      turn.Text,
			CreatedAt: turn.CreatedAt,
		}
	}

	return &dto.GetConversationResponse{
		SessionId: sessionId,
		Messages:  messages,
	}, nil
}

func (s *queryService) ClearConversation(ctx context.Context, sessionId string) (*dto.ClearConversationResponse, error) {
	if err := s.convRepo.Clear(ctx, sessionId); err != nil {
		return nil, apperror.NewInternal("conversation store failure", err)
	}

	return &dto.ClearConversationResponse{
		SessionId: sessionId,
		Message:   "conversation history cleared",
	}, nil
}
