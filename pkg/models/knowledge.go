package models

// KnowledgeRecord is one normalized row from a knowledge table, tagged with
// a stable citation code. Records are immutable after ingestion: a cache
// refresh replaces the whole collection, it never patches individual records.
type KnowledgeRecord struct {
	// ID is the row's sequence number within its source table. It is not
	// globally unique; Code is.
	ID int `json:"id"`

	// Code is the stable human-readable identifier used for citation,
	// derived as {TABLE_NAME_UPPER}_{id}.
	Code string `json:"code"`

	// Table is the source table's machine name.
	Table string `json:"table"`

	// TableName is the source table's display name.
	TableName string `json:"table_name"`

	// Fields maps normalized field names (lower-case, spaces replaced with
	// underscores) to cell values. Empty source cells are omitted.
	Fields map[string]string `json:"fields"`
}

// Field returns the named field value and whether it is present.
func (r *KnowledgeRecord) Field(name string) (string, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// TableData is the raw payload of one fetched knowledge table:
// a header row plus data rows.
type TableData struct {
	Headers []string
	Rows    [][]string
}
