// Package knowledge ingests and caches the multi-table knowledge base that
// backs the consultation engine.
package knowledge

import (
	"fmt"

	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
)

// TableConfig is the static configuration for one knowledge table. A single
// entry carries everything that varies per table (rank priority, scoring
// fields, title extraction) so the concerns cannot drift apart.
type TableConfig struct {
	// Name is the table's machine name and its sheet tab name.
	Name string

	// DisplayName is the human-readable table name used in citations.
	DisplayName string

	// RankPriority orders tables; lower surfaces first on score ties.
	RankPriority int

	Description string

	// PriorityFields are the fields whose keyword matches score highest
	// for this table.
	PriorityFields []string

	// ExactMatchField, when set, grants ExactMatchBonus if the field value
	// and the query contain one another.
	ExactMatchField string
	ExactMatchBonus int

	// TitleFields are checked in order for a citation title; the first
	// populated field wins.
	TitleFields []string
}

// Title derives a citation display title for a record of this table.
// Falls back to a generic record label when no title field is populated.
func (c TableConfig) Title(record models.KnowledgeRecord) string {
	for _, field := range c.TitleFields {
		if v, ok := record.Field(field); ok {
			return v
		}
	}
	return fmt.Sprintf("%s record %d", c.DisplayName, record.ID)
}

// Registry lists all knowledge tables in rank order. Pricing and situational
// tables outrank narrative content because consultation accuracy depends on
// price/symptom precision.
var Registry = []TableConfig{
	{
		Name:            "prices",
		DisplayName:     "Pricing",
		RankPriority:    1,
		Description:     "service price list",
		PriorityFields:  []string{"service_name", "category", "description"},
		ExactMatchField: "service_name",
		ExactMatchBonus: 10,
		TitleFields:     []string{"service_name", "name"},
	},
	{
		Name:            "situations",
		DisplayName:     "Situations",
		RankPriority:    2,
		Description:     "symptom and situation guidance",
		PriorityFields:  []string{"user_query", "symptom", "keywords"},
		ExactMatchField: "user_query",
		ExactMatchBonus: 8,
		TitleFields:     []string{"user_query", "symptom"},
	},
	{
		Name:            "faq",
		DisplayName:     "FAQ",
		RankPriority:    3,
		Description:     "frequently asked questions",
		PriorityFields:  []string{"question", "answer", "category"},
		ExactMatchField: "question",
		ExactMatchBonus: 8,
		TitleFields:     []string{"question"},
	},
	{
		Name:           "services",
		DisplayName:    "Services",
		RankPriority:   4,
		Description:    "service catalog",
		PriorityFields: []string{"name", "category", "description"},
		TitleFields:    []string{"name", "title"},
	},
	{
		Name:           "clinics",
		DisplayName:    "Clinics",
		RankPriority:   5,
		Description:    "partner clinic directory",
		PriorityFields: []string{"name", "city", "address"},
		TitleFields:    []string{"name"},
	},
	{
		Name:           "general",
		DisplayName:    "General Info",
		RankPriority:   6,
		Description:    "general reference content",
		PriorityFields: []string{"name", "title", "description"},
		TitleFields:    []string{"title", "name"},
	},
}

// defaultRankPriority sorts unknown tables after every registered one.
const defaultRankPriority = 100

// Lookup returns the configuration for a table machine name. Unknown tables
// get a default configuration so retrieval and citation still work.
func Lookup(table string) TableConfig {
	for _, cfg := range Registry {
		if cfg.Name == table {
			return cfg
		}
	}
	return TableConfig{
		Name:           table,
		DisplayName:    table,
		RankPriority:   defaultRankPriority,
		PriorityFields: []string{"name", "title", "description"},
		TitleFields:    []string{"name", "title"},
	}
}

// Tables returns the registry filtered to the given machine names, in
// registry order. An empty filter returns the full registry.
func Tables(names []string) []TableConfig {
	if len(names) == 0 {
		return Registry
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var out []TableConfig
	for _, cfg := range Registry {
		if wanted[cfg.Name] {
			out = append(out, cfg)
		}
	}
	return out
}
