package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jovannirio-prog/petvizor-engine/pkg/apperrors"
	"github.com/jovannirio-prog/petvizor-engine/pkg/jsonutil"
	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
)

// TableSource fetches the raw rows of one named knowledge table.
// Implementations return an error (or nil data) on any failure; the
// ingestor tolerates both and degrades that table to zero records.
type TableSource interface {
	Fetch(ctx context.Context, table string) (*models.TableData, error)
}

// SheetsSource reads knowledge tables from the Google Sheets values API,
// one sheet tab per table.
type SheetsSource struct {
	spreadsheetID string
	apiKey        string
	httpClient    *http.Client
	baseURL       string
}

// NewSheetsSource creates a table source over the given spreadsheet.
func NewSheetsSource(spreadsheetID, apiKey string, timeout time.Duration) *SheetsSource {
	return &SheetsSource{
		spreadsheetID: spreadsheetID,
		apiKey:        apiKey,
		httpClient:    &http.Client{Timeout: timeout},
		baseURL:       "https://sheets.googleapis.com/v4/spreadsheets",
	}
}

// valuesResponse is the subset of the Sheets values API payload we consume.
// Cells are kept raw because formatted columns come back as numbers or
// booleans rather than strings.
type valuesResponse struct {
	Values [][]json.RawMessage `json:"values"`
}

func stringRow(cells []json.RawMessage) []string {
	row := make([]string, len(cells))
	for i, cell := range cells {
		row[i] = jsonutil.FlexibleStringValue(cell)
	}
	return row
}

// Fetch implements TableSource. The first returned row is the header row.
func (s *SheetsSource) Fetch(ctx context.Context, table string) (*models.TableData, error) {
	endpoint := fmt.Sprintf("%s/%s/values/%s?key=%s",
		s.baseURL,
		url.PathEscape(s.spreadsheetID),
		url.PathEscape(table),
		url.QueryEscape(s.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build sheets request for %s: %w", table, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrSourceFetch, table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", apperrors.ErrSourceFetch, table, resp.StatusCode)
	}

	var payload valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %s: decode: %v", apperrors.ErrSourceFetch, table, err)
	}

	if len(payload.Values) == 0 {
		return nil, nil
	}

	rows := make([][]string, 0, len(payload.Values)-1)
	for _, cells := range payload.Values[1:] {
		rows = append(rows, stringRow(cells))
	}

	return &models.TableData{
		Headers: stringRow(payload.Values[0]),
		Rows:    rows,
	}, nil
}

var _ TableSource = (*SheetsSource)(nil)

// StaticSource serves fixed table data from memory. Used in tests and when
// the engine runs without a configured spreadsheet.
type StaticSource struct {
	tables map[string]*models.TableData
}

// NewStaticSource creates a static source over the given tables.
func NewStaticSource(tables map[string]*models.TableData) *StaticSource {
	return &StaticSource{tables: tables}
}

// Fetch implements TableSource.
func (s *StaticSource) Fetch(_ context.Context, table string) (*models.TableData, error) {
	data, ok := s.tables[table]
	if !ok {
		return nil, nil
	}
	return data, nil
}

var _ TableSource = (*StaticSource)(nil)
