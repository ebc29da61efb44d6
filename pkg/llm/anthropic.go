package llm

import (
	"context"
	"fmt"
	"time"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"github.com/jovannirio-prog/petvizor-engine/pkg/apperrors"
	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
)

// maxAnthropicTokens bounds one completion; consultation answers are short.
const maxAnthropicTokens = 1024

// AnthropicClient provides chat completions via the Anthropic Messages API.
type AnthropicClient struct {
	client      *anthropic.Client
	model       string
	temperature float32
	logger      *zap.Logger
}

// NewAnthropicClient creates a new Anthropic chat client.
func NewAnthropicClient(cfg *Config, logger *zap.Logger) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &AnthropicClient{
		client:      anthropic.NewClient(cfg.APIKey),
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		logger:      logger.Named("anthropic"),
	}, nil
}

// CreateChatCompletion implements ChatClient.
func (c *AnthropicClient) CreateChatCompletion(ctx context.Context, systemPrompt string, history []models.ConversationTurn, userMessage string) (string, error) {
	messages := make([]anthropic.Message, 0, len(history)+1)
	for _, turn := range history {
		if turn.Role == models.TurnRoleAssistant {
			messages = append(messages, anthropic.NewAssistantTextMessage(turn.Content))
		} else {
			messages = append(messages, anthropic.NewUserTextMessage(turn.Content))
		}
	}
	messages = append(messages, anthropic.NewUserTextMessage(userMessage))

	start := time.Now()
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(c.model),
		System:      systemPrompt,
		Messages:    messages,
		MaxTokens:   maxAnthropicTokens,
		Temperature: &c.temperature,
	})
	if err != nil {
		c.logger.Error("Chat completion failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("chat completion: %w", err)
	}

	content := resp.GetFirstContentText()
	if content == "" {
		return "", apperrors.ErrNoModelContent
	}

	c.logger.Info("Chat completion succeeded",
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens),
		zap.Duration("elapsed", time.Since(start)))

	return content, nil
}

// GetModel returns the configured model name.
func (c *AnthropicClient) GetModel() string {
	return c.model
}
