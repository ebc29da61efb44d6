package knowledge

import (
	"testing"

	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
)

func TestRegistry_RankOrder(t *testing.T) {
	for i := 1; i < len(Registry); i++ {
		if Registry[i-1].RankPriority >= Registry[i].RankPriority {
			t.Errorf("registry not in ascending rank order at %s", Registry[i].Name)
		}
	}
}

func TestLookup_UnknownTableGetsDefaults(t *testing.T) {
	cfg := Lookup("mystery")
	if cfg.Name != "mystery" {
		t.Errorf("expected name passthrough, got %s", cfg.Name)
	}
	if cfg.RankPriority != defaultRankPriority {
		t.Errorf("expected default rank priority, got %d", cfg.RankPriority)
	}
	want := []string{"name", "title", "description"}
	if len(cfg.PriorityFields) != len(want) {
		t.Fatalf("expected default priority fields %v, got %v", want, cfg.PriorityFields)
	}
	for i, f := range want {
		if cfg.PriorityFields[i] != f {
			t.Errorf("priority field %d = %s, want %s", i, cfg.PriorityFields[i], f)
		}
	}
}

func TestTableConfig_Title(t *testing.T) {
	tests := []struct {
		name   string
		table  string
		record models.KnowledgeRecord
		want   string
	}{
		{
			"pricing uses service name",
			"prices",
			models.KnowledgeRecord{ID: 3, Fields: map[string]string{"service_name": "Вакцинация"}},
			"Вакцинация",
		},
		{
			"faq uses question",
			"faq",
			models.KnowledgeRecord{ID: 1, Fields: map[string]string{"question": "Как записаться?"}},
			"Как записаться?",
		},
		{
			"falls back to generic label",
			"prices",
			models.KnowledgeRecord{ID: 7, Fields: map[string]string{"price": "1500"}},
			"Pricing record 7",
		},
		{
			"unknown table generic label",
			"mystery",
			models.KnowledgeRecord{ID: 2, Fields: map[string]string{"other": "x"}},
			"mystery record 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Lookup(tt.table)
			if got := cfg.Title(tt.record); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTables_FilterKeepsRegistryOrder(t *testing.T) {
	got := Tables([]string{"faq", "prices"})
	if len(got) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(got))
	}
	if got[0].Name != "prices" || got[1].Name != "faq" {
		t.Errorf("expected registry order [prices faq], got [%s %s]", got[0].Name, got[1].Name)
	}

	if all := Tables(nil); len(all) != len(Registry) {
		t.Errorf("empty filter should return full registry, got %d", len(all))
	}
}
