package knowledge

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/jovannirio-prog/petvizor-engine/pkg/logging"
	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
)

// Ingestor fetches all configured knowledge tables and normalizes their
// rows into a single record collection ordered by table rank priority.
type Ingestor struct {
	source TableSource
	tables []TableConfig
	logger *zap.Logger
}

// NewIngestor creates an ingestor over the given source and table set.
func NewIngestor(source TableSource, tables []TableConfig, logger *zap.Logger) *Ingestor {
	return &Ingestor{
		source: source,
		tables: tables,
		logger: logger.Named("ingestor"),
	}
}

// Ingest fetches every configured table concurrently and returns the merged
// record collection sorted ascending by table rank priority, preserving
// per-table row order. A failing or empty table contributes zero records;
// total failure yields an empty collection, never an error.
func (i *Ingestor) Ingest(ctx context.Context) []models.KnowledgeRecord {
	perTable := make([][]models.KnowledgeRecord, len(i.tables))

	var wg sync.WaitGroup
	for idx, table := range i.tables {
		wg.Add(1)
		go func(idx int, table TableConfig) {
			defer wg.Done()

			data, err := i.source.Fetch(ctx, table.Name)
			if err != nil {
				// Fetch errors embed the request URL, keep the API key out
				// of the log.
				i.logger.Warn("Knowledge table fetch failed",
					zap.String("table", table.Name),
					zap.String("error", logging.SanitizeError(err)))
				return
			}
			if data == nil || len(data.Headers) == 0 {
				i.logger.Warn("Knowledge table empty",
					zap.String("table", table.Name))
				return
			}

			perTable[idx] = normalizeTable(table, data)
		}(idx, table)
	}
	wg.Wait()

	order := make([]int, len(i.tables))
	for idx := range order {
		order[idx] = idx
	}
	sort.SliceStable(order, func(a, b int) bool {
		return i.tables[order[a]].RankPriority < i.tables[order[b]].RankPriority
	})

	var records []models.KnowledgeRecord
	total := 0
	for _, idx := range order {
		records = append(records, perTable[idx]...)
		total += len(perTable[idx])
	}

	i.logger.Info("Knowledge base ingested",
		zap.Int("tables", len(i.tables)),
		zap.Int("records", total))

	return records
}

// normalizeTable converts a raw table payload into records. The first row
// supplies field keys; empty cells are omitted rather than stored as empty
// strings.
func normalizeTable(table TableConfig, data *models.TableData) []models.KnowledgeRecord {
	keys := make([]string, len(data.Headers))
	for ci, header := range data.Headers {
		keys[ci] = normalizeFieldName(header)
	}

	var records []models.KnowledgeRecord
	for ri, row := range data.Rows {
		id := ri + 1
		fields := make(map[string]string)
		for ci, key := range keys {
			if key == "" || ci >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[ci])
			if value == "" {
				continue
			}
			fields[key] = value
		}
		if len(fields) == 0 {
			continue
		}

		records = append(records, models.KnowledgeRecord{
			ID:        id,
			Code:      fmt.Sprintf("%s_%d", strings.ToUpper(table.Name), id),
			Table:     table.Name,
			TableName: table.DisplayName,
			Fields:    fields,
		})
	}
	return records
}

// normalizeFieldName lower-cases a header cell and replaces spaces with
// underscores to form a field key.
func normalizeFieldName(header string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(header)), " ", "_")
}
