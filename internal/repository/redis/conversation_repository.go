package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "conversation:"

// ConversationRepository keeps each session as a redis list. The turn pair
// for one query is pushed inside a single transaction pipeline, so readers
// never observe a half-appended exchange; redis itself serializes writers.
type ConversationRepository struct {
	client *redis.Client
}

var _ contract.ConversationRepository = &ConversationRepository{}

func NewConversationRepository(client *redis.Client) *ConversationRepository {
	return &ConversationRepository{
		client: client,
	}
}

func (r *ConversationRepository) Append(ctx context.Context, sessionId string, turns ...store.Turn) error {
	pipe := r.client.TxPipeline()
	for _, turn := range turns {
		payload, err := json.Marshal(turn)
		if err != nil {
			return fmt.Errorf("marshal turn: %w", err)
		}
		pipe.RPush(ctx, keyPrefix+sessionId, payload)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append turns: %w", err)
	}
	return nil
}

func (r *ConversationRepository) Get(ctx context.Context, sessionId string) ([]store.Turn, error) {
	values, err := r.client.LRange(ctx, keyPrefix+sessionId, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load turns: %w", err)
	}

	turns := make([]store.Turn, 0, len(values))
	for _, v := range values {
		var turn store.Turn
		if err := json.Unmarshal([]byte(v), &turn); err != nil {
			return nil, fmt.Errorf("unmarshal turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (r *ConversationRepository) Clear(ctx context.Context, sessionId string) error {
	// DEL on a missing key is a no-op, which keeps Clear idempotent
	if err := r.client.Del(ctx, keyPrefix+sessionId).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
