package memory

import (
	"context"
	"sync"
	"time"

	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// CachedConversationRepository is the bounded variant: sessions expire after
// a TTL of inactivity instead of living for the process lifetime. Every
// append refreshes the expiry.
type CachedConversationRepository struct {
	mu    sync.Mutex // guards get-or-create only
	cache *cache.Cache
}

var _ contract.ConversationRepository = &CachedConversationRepository{}

func NewCachedConversationRepository(sessionTTL time.Duration) *CachedConversationRepository {
	// Purge expired sessions every 10 minutes
	c := cache.New(sessionTTL, 10*time.Minute)
	return &CachedConversationRepository{
		cache: c,
	}
}

func (r *CachedConversationRepository) Append(ctx context.Context, sessionId string, turns ...store.Turn) error {
	rec := r.getOrCreate(sessionId)
	rec.mu.Lock()
	rec.turns = append(rec.turns, turns...)
	rec.mu.Unlock()

	// Re-set to refresh the TTL on activity
	r.cache.Set(sessionId, rec, cache.DefaultExpiration)
	return nil
}

func (r *CachedConversationRepository) Get(ctx context.Context, sessionId string) ([]store.Turn, error) {
	x, found := r.cache.Get(sessionId)
	if !found {
		return []store.Turn{}, nil
	}
	rec := x.(*sessionRecord)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make([]store.Turn, len(rec.turns))
	copy(out, rec.turns)
	return out, nil
}

func (r *CachedConversationRepository) Clear(ctx context.Context, sessionId string) error {
	r.cache.Delete(sessionId)
	return nil
}

func (r *CachedConversationRepository) getOrCreate(sessionId string) *sessionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	if x, found := r.cache.Get(sessionId); found {
		return x.(*sessionRecord)
	}
	rec := &sessionRecord{}
	r.cache.Set(sessionId, rec, cache.DefaultExpiration)
	return rec
}
