package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
)

// mockExchangeRepo records inserts and can be told to fail.
type mockExchangeRepo struct {
	insertErr error
	inserted  chan *models.Exchange
	recent    []*models.Exchange
	recentErr error
}

func newMockExchangeRepo() *mockExchangeRepo {
	return &mockExchangeRepo{inserted: make(chan *models.Exchange, 8)}
}

func (m *mockExchangeRepo) Insert(ctx context.Context, exchange *models.Exchange) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted <- exchange
	return nil
}

func (m *mockExchangeRepo) GetRecentByUser(ctx context.Context, userID string, limit int) ([]*models.Exchange, error) {
	if m.recentErr != nil {
		return nil, m.recentErr
	}
	return m.recent, nil
}

func TestPersist_WritesInBackground(t *testing.T) {
	repo := newMockExchangeRepo()
	p := NewExchangePersister(repo, zap.NewNop())

	p.Persist(&models.Exchange{UserID: "user-1", Message: "вопрос", Response: "ответ"})

	select {
	case e := <-repo.inserted:
		if e.UserID != "user-1" {
			t.Errorf("unexpected exchange: %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("exchange was never written")
	}
}

func TestPersist_FailureIsSwallowed(t *testing.T) {
	repo := newMockExchangeRepo()
	repo.insertErr = errors.New("connection refused")
	p := NewExchangePersister(repo, zap.NewNop())

	// Must not panic or block.
	p.Persist(&models.Exchange{UserID: "user-1", Message: "вопрос"})
	time.Sleep(50 * time.Millisecond)
}

func TestNopExchangePersister(t *testing.T) {
	NopExchangePersister{}.Persist(&models.Exchange{Message: "discarded"})
}
