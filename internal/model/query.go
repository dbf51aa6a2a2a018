package model

import "time"

// Conversation roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// AskRequest represents an ask request
type AskRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

// AskResponse represents an ask response
type AskResponse struct {
	Answer    string `json:"answer"`
	Cards     []Card `json:"cards"`
	RequestID string `json:"-"`
}

// Message is one stored conversation turn
type Message struct {
	Role      string    `json:"role" db:"role"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AskLog is the persisted record of one answered ask
type AskLog struct {
	RequestID      string
	UserID         string
	SessionID      string
	Query          string
	EffectiveQuery string
	Route          string
	Intent         *Intent
	CardCount      int
	ResponseTimeMs int
}
