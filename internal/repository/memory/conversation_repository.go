package memory

import (
	"context"
	"sync"

	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/pkg/store"
)

// ConversationRepository is the default process-lifetime store: a plain map
// with one mutex per session, so appends to the same session serialize while
// different sessions proceed independently.
type ConversationRepository struct {
	mu       sync.RWMutex
	sessions map[string]*sessionRecord
}

type sessionRecord struct {
	mu    sync.Mutex
	turns []store.Turn
}

var _ contract.ConversationRepository = &ConversationRepository{}

func NewConversationRepository() *ConversationRepository {
	return &ConversationRepository{
		sessions: make(map[string]*sessionRecord),
	}
}

func (r *ConversationRepository) Append(ctx context.Context, sessionId string, turns ...store.Turn) error {
	rec := r.getOrCreate(sessionId)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.turns = append(rec.turns, turns...)
	return nil
}

func (r *ConversationRepository) Get(ctx context.Context, sessionId string) ([]store.Turn, error) {
	r.mu.RLock()
	rec, ok := r.sessions[sessionId]
	r.mu.RUnlock()
	if !ok {
		return []store.Turn{}, nil
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make([]store.Turn, len(rec.turns))
	copy(out, rec.turns)
	return out, nil
}

func (r *ConversationRepository) Clear(ctx context.Context, sessionId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionId)
	return nil
}

func (r *ConversationRepository) getOrCreate(sessionId string) *sessionRecord {
	r.mu.RLock()
	rec, ok := r.sessions[sessionId]
	r.mu.RUnlock()
	if ok {
		return rec
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok = r.sessions[sessionId]; ok {
		return rec
	}
	rec = &sessionRecord{}
	r.sessions[sessionId] = rec
	return rec
}
