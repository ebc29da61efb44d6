// Package llm provides chat completion clients for the consultation engine.
package llm

import (
	"context"

	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
)

// ChatClient defines the chat completion interface. The call receives the
// system prompt, the full prior conversation, then the new user message.
// Use this interface for dependency injection to enable mocking in tests.
type ChatClient interface {
	// CreateChatCompletion returns the model's text content for the
	// conversation. An empty completion is an error, not an empty string.
	CreateChatCompletion(ctx context.Context, systemPrompt string, history []models.ConversationTurn, userMessage string) (string, error)

	// GetModel returns the configured model name.
	GetModel() string
}

// Ensure the concrete clients implement ChatClient at compile time.
var (
	_ ChatClient = (*OpenAIClient)(nil)
	_ ChatClient = (*AnthropicClient)(nil)
)
