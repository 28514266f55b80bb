package store

import (
	"time"

	"github.com/google/uuid"
)

// Turn is a single message inside a conversation session.
// Turns are immutable once appended.
type Turn struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"` // "user" | "assistant"
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// NewTurn stamps a fresh turn with an id and creation time.
func NewTurn(role, text string) Turn {
	return Turn{
		Id:        uuid.New(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}
