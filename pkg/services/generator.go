// Package services implements the consultation engine's business logic.
package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jovannirio-prog/petvizor-engine/pkg/llm"
	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
	"github.com/jovannirio-prog/petvizor-engine/pkg/retry"
)

// ResponseGenerator produces the consultation answer text. It never fails:
// any model problem degrades to deterministic fallback text.
type ResponseGenerator interface {
	Generate(ctx context.Context, prompt, userMessage string, history []models.ConversationTurn) string
}

type responseGenerator struct {
	client  llm.ChatClient // nil when no credential is configured
	timeout time.Duration
	logger  *zap.Logger
}

// NewResponseGenerator creates a generator over the given chat client.
// A nil client is a supported state: every answer is then fallback text.
func NewResponseGenerator(client llm.ChatClient, timeout time.Duration, logger *zap.Logger) ResponseGenerator {
	return &responseGenerator{
		client:  client,
		timeout: timeout,
		logger:  logger.Named("generator"),
	}
}

var _ ResponseGenerator = (*responseGenerator)(nil)

// Generate invokes the model with the composed prompt, the prior history
// and the new message. On any failure (no credential, network error,
// timeout, empty completion) it returns the fallback sentence selected by
// the message length, so identical inputs reproduce identical output.
func (g *responseGenerator) Generate(ctx context.Context, prompt, userMessage string, history []models.ConversationTurn) string {
	if g.client == nil {
		return llm.FallbackResponse(userMessage)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	// Transient model errors (rate limits, 5xx) get a short retry window
	// inside the overall timeout before the fallback kicks in.
	content, err := retry.DoWithResult(callCtx, retry.DefaultConfig(), func() (string, error) {
		return g.client.CreateChatCompletion(callCtx, prompt, history, userMessage)
	})
	if err != nil {
		g.logger.Warn("Model call failed, using fallback response",
			zap.String("model", g.client.GetModel()),
			zap.Error(err))
		return llm.FallbackResponse(userMessage)
	}

	return content
}
