package dto

import (
	"time"

	"github.com/google/uuid"
)

type TurnDTO struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type GetConversationResponse struct {
	SessionId string    `json:"session_id"`
	Messages  []TurnDTO `json:"messages"`
}

type ClearConversationResponse struct {
	SessionId string `json:"session_id"`
	Message   string `json:"message"`
}
