package llm

import (
	"context"

	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
)

// MockChatClient is a configurable mock for testing chat functionality.
// Set the function field to control behavior in tests.
type MockChatClient struct {
	// CreateChatCompletionFunc is called when CreateChatCompletion is
	// invoked. If nil, returns "mock response" and nil error.
	CreateChatCompletionFunc func(ctx context.Context, systemPrompt string, history []models.ConversationTurn, userMessage string) (string, error)

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	// Call tracking for verification
	CreateChatCompletionCalls int
	LastSystemPrompt          string
	LastUserMessage           string
	LastHistory               []models.ConversationTurn
}

// NewMockChatClient creates a new mock with sensible defaults.
func NewMockChatClient() *MockChatClient {
	return &MockChatClient{Model: "mock-model"}
}

// CreateChatCompletion implements ChatClient.
func (m *MockChatClient) CreateChatCompletion(ctx context.Context, systemPrompt string, history []models.ConversationTurn, userMessage string) (string, error) {
	m.CreateChatCompletionCalls++
	m.LastSystemPrompt = systemPrompt
	m.LastUserMessage = userMessage
	m.LastHistory = history
	if m.CreateChatCompletionFunc != nil {
		return m.CreateChatCompletionFunc(ctx, systemPrompt, history, userMessage)
	}
	return "mock response", nil
}

// GetModel implements ChatClient.
func (m *MockChatClient) GetModel() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

var _ ChatClient = (*MockChatClient)(nil)
