package interfaces

import (
	"context"

	"github.com/Khuslen88/secure-chat/internal/models"
)

// Message is a role/content pair in LLM wire format
type Message struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

// LLMService generates chat completions from a hosted model API
type LLMService interface {
	// Chat sends the conversation (system prompt first, then history in
	// chronological order) and returns the assistant response text.
	Chat(ctx context.Context, messages []Message) (string, error)

	// HealthCheck verifies the provider is reachable.
	HealthCheck(ctx context.Context) error

	// ModelName returns the configured model identifier.
	ModelName() string
}

// ChatRequest is an inbound chat message from an employee
type ChatRequest struct {
	Username string `json:"username"`
	Message  string `json:"message"`
	Filename string `json:"filename,omitempty"` // Attached upload, if any
}

// ChatResponse is the assistant's reply plus retrieval metadata
type ChatResponse struct {
	Message      *models.Message `json:"message"`
	ContextChars int             `json:"context_chars"` // Length of injected knowledge context
	Model        string          `json:"model"`
}

// ChatService handles the full chat exchange: persistence, knowledge
// context retrieval, and the LLM round trip.
type ChatService interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// History returns the most recent stored messages in chronological order.
	History(ctx context.Context, limit int) ([]*models.Message, error)
}
