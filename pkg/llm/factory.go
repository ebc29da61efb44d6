package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jovannirio-prog/petvizor-engine/pkg/config"
)

// NewChatClient creates the chat client selected by configuration.
// Returns (nil, nil) when no credential is configured: running without a
// model is a supported state, the engine then answers with fallback text.
func NewChatClient(cfg *config.AIConfig, logger *zap.Logger) (ChatClient, error) {
	if !cfg.HasCredential() {
		logger.Warn("No model credential configured, consultation will use fallback responses",
			zap.String("provider", cfg.Provider))
		return nil, nil
	}

	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicClient(&Config{
			Model:       cfg.Model,
			APIKey:      cfg.AnthropicKey,
			Temperature: cfg.Temperature,
		}, logger)
	case "openai", "":
		return NewOpenAIClient(&Config{
			Endpoint:    cfg.Endpoint,
			Model:       cfg.Model,
			APIKey:      cfg.OpenAIKey,
			Temperature: cfg.Temperature,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}
