package knowledge

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
)

// IngestFunc produces a fresh knowledge record collection.
type IngestFunc func(ctx context.Context) []models.KnowledgeRecord

// Cache is the single owner of the process-wide knowledge snapshot. It
// serves the cached collection within the validity window and re-ingests
// when the entry is absent or expired. Replacement is a whole-value swap;
// nothing ever patches the cached records, and there is no external
// invalidation API.
type Cache struct {
	ingest IngestFunc
	ttl    time.Duration
	logger *zap.Logger

	mu        sync.Mutex
	records   []models.KnowledgeRecord
	fetchedAt time.Time

	now func() time.Time
}

// NewCache creates a cache over the given ingest function with the given
// validity window.
func NewCache(ingest IngestFunc, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{
		ingest: ingest,
		ttl:    ttl,
		logger: logger.Named("knowledge-cache"),
		now:    time.Now,
	}
}

// Get returns the current knowledge snapshot, refreshing it first when the
// entry is absent or older than the validity window. Holding the lock
// across the refresh makes it single-flight; that is an optimization, not
// a correctness requirement, since ingestion is idempotent.
func (c *Cache) Get(ctx context.Context) []models.KnowledgeRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.fetchedAt.IsZero() && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.records
	}

	start := c.now()
	c.records = c.ingest(ctx)
	c.fetchedAt = c.now()

	c.logger.Info("Knowledge cache refreshed",
		zap.Int("records", len(c.records)),
		zap.Duration("elapsed", c.fetchedAt.Sub(start)))

	return c.records
}
