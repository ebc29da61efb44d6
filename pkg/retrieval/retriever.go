// Package retrieval scores and ranks knowledge records against free-text
// consultation queries.
package retrieval

import (
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jovannirio-prog/petvizor-engine/pkg/knowledge"
	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
)

// Scoring weights. Priority-field hits dominate generic text hits, and the
// per-table exact-match bonuses dominate both, so pricing and symptom
// records surface ahead of narrative content mentioning the same words.
const (
	weightTextMatch     = 1
	weightPriorityField = 5
	weightKeywordField  = 3
)

// minKeywordLen drops short tokens (prepositions, particles) from queries.
const minKeywordLen = 3

// keywordFields are the fields that editors fill with intent keywords.
var keywordFields = []string{"keywords", "intent_keywords", "faq_keywords"}

// Retriever ranks knowledge records against tokenized queries.
type Retriever struct {
	topK   int
	logger *zap.Logger
}

// NewRetriever creates a retriever returning at most topK records.
func NewRetriever(topK int, logger *zap.Logger) *Retriever {
	return &Retriever{
		topK:   topK,
		logger: logger.Named("retriever"),
	}
}

// Retrieve scores every record against the query and returns the matching
// records ordered by score descending, ties broken by ascending table rank
// priority, truncated to topK. Records that match nothing are dropped.
func (r *Retriever) Retrieve(query string, records []models.KnowledgeRecord) []models.KnowledgeRecord {
	if len(records) == 0 {
		return nil
	}

	keywords := Tokenize(query)
	lowerQuery := strings.ToLower(strings.TrimSpace(query))

	type scored struct {
		record models.KnowledgeRecord
		score  int
		rank   int
	}

	var matches []scored
	for _, record := range records {
		cfg := knowledge.Lookup(record.Table)
		score := scoreRecord(record, cfg, keywords, lowerQuery)
		if score == 0 {
			continue
		}
		matches = append(matches, scored{record: record, score: score, rank: cfg.RankPriority})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].score != matches[b].score {
			return matches[a].score > matches[b].score
		}
		return matches[a].rank < matches[b].rank
	})

	if len(matches) > r.topK {
		matches = matches[:r.topK]
	}

	result := make([]models.KnowledgeRecord, len(matches))
	for i, m := range matches {
		result[i] = m.record
	}

	r.logger.Debug("Knowledge retrieved",
		zap.Int("keywords", len(keywords)),
		zap.Int("candidates", len(records)),
		zap.Int("matches", len(result)))

	return result
}

// Tokenize splits a query on whitespace, lower-cases it, and keeps tokens
// longer than two runes.
func Tokenize(query string) []string {
	var keywords []string
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(token) >= minKeywordLen {
			keywords = append(keywords, token)
		}
	}
	return keywords
}

// scoreRecord computes the relevance weight of one record. Keyword weights
// accumulate per keyword; the table's exact-match bonus is evaluated once
// per record.
func scoreRecord(record models.KnowledgeRecord, cfg knowledge.TableConfig, keywords []string, lowerQuery string) int {
	itemText := searchText(record)

	score := 0
	for _, kw := range keywords {
		if strings.Contains(itemText, kw) {
			score += weightTextMatch
		}
		for _, field := range cfg.PriorityFields {
			if v, ok := record.Field(field); ok && strings.Contains(strings.ToLower(v), kw) {
				score += weightPriorityField
			}
		}
		for _, field := range keywordFields {
			if v, ok := record.Field(field); ok && strings.Contains(strings.ToLower(v), kw) {
				score += weightKeywordField
				break
			}
		}
	}

	if cfg.ExactMatchField != "" && lowerQuery != "" {
		if v, ok := record.Field(cfg.ExactMatchField); ok {
			lowerValue := strings.ToLower(v)
			if strings.Contains(lowerQuery, lowerValue) || strings.Contains(lowerValue, lowerQuery) {
				score += cfg.ExactMatchBonus
			}
		}
	}

	return score
}

// searchText joins all field values into one lower-cased haystack.
func searchText(record models.KnowledgeRecord) string {
	values := make([]string, 0, len(record.Fields))
	for _, v := range record.Fields {
		values = append(values, v)
	}
	return strings.ToLower(strings.Join(values, " "))
}
