package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
	"github.com/jovannirio-prog/petvizor-engine/pkg/repositories"
)

// persistTimeout bounds the background write; the response has already been
// computed by the time it runs.
const persistTimeout = 5 * time.Second

// ExchangePersister writes question/answer pairs for future context.
// Persist is fire-and-forget: failures are logged, never surfaced, and
// never delay the caller.
type ExchangePersister interface {
	Persist(exchange *models.Exchange)
}

type exchangePersister struct {
	repo   repositories.ExchangeRepository
	logger *zap.Logger
}

// NewExchangePersister creates a persister over the given repository.
func NewExchangePersister(repo repositories.ExchangeRepository, logger *zap.Logger) ExchangePersister {
	return &exchangePersister{
		repo:   repo,
		logger: logger.Named("exchange-persister"),
	}
}

var _ ExchangePersister = (*exchangePersister)(nil)

// Persist writes the exchange on a background goroutine. The write races
// the HTTP response; its outcome is intentionally discarded.
func (p *exchangePersister) Persist(exchange *models.Exchange) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := p.repo.Insert(ctx, exchange); err != nil {
			p.logger.Error("Failed to persist exchange",
				zap.String("user_id", exchange.UserID),
				zap.String("session_id", exchange.SessionID),
				zap.Error(err))
		}
	}()
}

// NopExchangePersister discards exchanges. Used when the engine runs
// without a database.
type NopExchangePersister struct{}

// Persist implements ExchangePersister.
func (NopExchangePersister) Persist(*models.Exchange) {}

var _ ExchangePersister = NopExchangePersister{}
