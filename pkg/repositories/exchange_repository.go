// Package repositories provides PostgreSQL data access for petvizor-engine.
package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jovannirio-prog/petvizor-engine/pkg/database"
	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
)

// ExchangeRepository provides append-only access to persisted
// question/answer exchanges.
type ExchangeRepository interface {
	// Insert stores one exchange. Exchanges are never updated.
	Insert(ctx context.Context, exchange *models.Exchange) error

	// GetRecentByUser returns the user's most recent exchanges,
	// newest first.
	GetRecentByUser(ctx context.Context, userID string, limit int) ([]*models.Exchange, error)
}

type exchangeRepository struct {
	db *database.DB
}

// NewExchangeRepository creates a new ExchangeRepository.
func NewExchangeRepository(db *database.DB) ExchangeRepository {
	return &exchangeRepository{db: db}
}

var _ ExchangeRepository = (*exchangeRepository)(nil)

func (r *exchangeRepository) Insert(ctx context.Context, exchange *models.Exchange) error {
	if exchange.ID == uuid.Nil {
		exchange.ID = uuid.New()
	}
	if exchange.CreatedAt.IsZero() {
		exchange.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO exchanges (id, user_id, message, response, session_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		exchange.ID, exchange.UserID, exchange.Message,
		exchange.Response, exchange.SessionID, exchange.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert exchange: %w", err)
	}

	return nil
}

func (r *exchangeRepository) GetRecentByUser(ctx context.Context, userID string, limit int) ([]*models.Exchange, error) {
	query := `
		SELECT id, user_id, message, response, session_id, created_at
		FROM exchanges
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []*models.Exchange
	for rows.Next() {
		var e models.Exchange
		if err := rows.Scan(&e.ID, &e.UserID, &e.Message, &e.Response, &e.SessionID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exchange: %w", err)
		}
		exchanges = append(exchanges, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exchanges: %w", err)
	}

	return exchanges, nil
}
