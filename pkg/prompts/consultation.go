// Package prompts builds the role-conditioned system instructions for the
// consultation engine.
package prompts

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
)

// Sentinel strings emitted when a prompt section has no content. Keeping
// them explicit lets the operating rules reference them directly.
const (
	NoKnowledgeSentinel  = "No relevant knowledge found in the knowledge base."
	NoPetSentinel        = "No pet selected."
	HistoryStartSentinel = "Beginning of conversation."
)

// personas maps caller roles to a one-line persona statement.
var personas = map[string]string{
	models.RoleOwner:  "You are PetVizor, an AI pet-care consultant advising a pet owner in plain, reassuring language.",
	models.RoleClinic: "You are PetVizor, an AI assistant for veterinary clinic staff; answer precisely and use professional terminology.",
	models.RoleAdmin:  "You are PetVizor, an AI assistant for the service administrator; answer precisely and flag knowledge base gaps you notice.",
}

// operatingRules are non-negotiable for every role.
var operatingRules = []string{
	"Answer using ONLY the knowledge base excerpt below. Never invent prices, services, clinic details or medical facts.",
	"If the excerpt says no relevant knowledge was found, say so explicitly and suggest contacting a veterinarian; do not guess.",
	"For price questions rely on Pricing entries, for symptom questions on Situations entries, for organizational questions on FAQ entries.",
	"If the user corrects a detail about their pet or situation, treat the correction as binding for the rest of the conversation.",
	"Stay within pet care. Politely redirect unrelated questions back to the service.",
	"Do not repeat record codes or citation metadata in your answer; sources are listed separately.",
}

// clinicSupplement is the operational block only clinic staff receive.
var clinicSupplement = []string{
	"The user works at a partner clinic: they may ask about appointment workload, service composition and pricing rationale.",
	"When a question concerns a procedure, include preparation and contraindication details from the knowledge base if present.",
}

// Compose builds the consultation system prompt. Sections are emitted in a
// fixed order: persona, operating rules, role supplement, knowledge
// excerpt, pet context, conversation history, resolved role label.
func Compose(role string, records []models.KnowledgeRecord, pet *models.PetProfile, history []models.ConversationTurn) string {
	resolvedRole := role
	persona, ok := personas[resolvedRole]
	if !ok {
		resolvedRole = models.RoleOwner
		persona = personas[models.RoleOwner]
	}

	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\n## Rules\n")
	for _, rule := range operatingRules {
		b.WriteString("- ")
		b.WriteString(rule)
		b.WriteString("\n")
	}

	if resolvedRole == models.RoleClinic {
		b.WriteString("\n## Clinic context\n")
		for _, line := range clinicSupplement {
			b.WriteString("- ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n## Knowledge base excerpt\n")
	if len(records) == 0 {
		b.WriteString(NoKnowledgeSentinel)
		b.WriteString("\n")
	} else {
		for i, record := range records {
			b.WriteString(fmt.Sprintf("%d. [%s]\n", i+1, record.TableName))
			for _, key := range sortedFieldKeys(record) {
				b.WriteString(fmt.Sprintf("   %s: %s\n", key, record.Fields[key]))
			}
		}
	}

	b.WriteString("\n## Pet\n")
	if pet.IsEmpty() {
		b.WriteString(NoPetSentinel)
		b.WriteString("\n")
	} else {
		// Fall back to field rendering only if serialization fails;
		// the profile is caller-provided plain strings, so it will not.
		if data, err := json.Marshal(pet); err == nil {
			b.Write(data)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n## Conversation so far\n")
	if len(history) == 0 {
		b.WriteString(HistoryStartSentinel)
		b.WriteString("\n")
	} else {
		for _, turn := range history {
			b.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Content))
		}
	}

	b.WriteString(fmt.Sprintf("\nUser role: %s\n", resolvedRole))
	return b.String()
}

// sortedFieldKeys returns the record's field names in stable order so the
// composed prompt is deterministic.
func sortedFieldKeys(record models.KnowledgeRecord) []string {
	keys := make([]string, 0, len(record.Fields))
	for k := range record.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
