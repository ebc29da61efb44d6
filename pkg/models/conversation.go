package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation turn roles.
const (
	TurnRoleUser      = "user"
	TurnRoleAssistant = "assistant"
)

// ConversationTurn is one message in a consultation conversation,
// oldest-first when sequenced.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Exchange is one persisted question/answer pair, owned by the requesting
// user. Append-only; written after a response is generated and never read
// back within the same request.
type Exchange struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}
