package contract

import (
	"context"

	"rag-chat-be/pkg/store"
)

// ConversationRepository owns all session state. Appends to the same session
// are serialized (one mutation in flight per session id); operations on
// different sessions never block each other.
type ConversationRepository interface {
	// Append creates the session if absent and appends all given turns as
	// one atomic unit. The query flow passes the user/assistant pair in a
	// single call so a session can never end up with a dangling half-turn.
	Append(ctx context.Context, sessionId string, turns ...store.Turn) error

	// Get returns the full ordered turn sequence. An unknown session yields
	// an empty slice, not an error.
	Get(ctx context.Context, sessionId string) ([]store.Turn, error)

	// Clear removes the session entirely. Idempotent.
	Clear(ctx context.Context, sessionId string) error
}
