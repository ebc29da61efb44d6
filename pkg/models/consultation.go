package models

// Caller roles recognized by the prompt composer. Unrecognized roles fall
// back to the owner persona.
const (
	RoleOwner  = "owner"
	RoleClinic = "clinic"
	RoleAdmin  = "admin"
)

// ConsultationResult is the outcome of one consultation request.
type ConsultationResult struct {
	// Response is the generated (or fallback) answer text.
	Response string `json:"response"`

	// SessionID groups exchanges of one conversation.
	SessionID string `json:"sessionId"`

	// Sources is the human-readable citation list derived from the
	// retrieved records, one "{code} ({tableName}): {title}" line per
	// record. Nil when nothing was retrieved.
	Sources *string `json:"sources"`

	// Context describes how the answer was produced.
	Context ConsultationContext `json:"context"`
}

// ConsultationContext reports retrieval diagnostics alongside the answer.
type ConsultationContext struct {
	UserRole               string   `json:"userRole"`
	KnowledgeBaseSize      int      `json:"knowledgeBaseSize"`
	RelevantKnowledgeFound int      `json:"relevantKnowledgeFound"`
	UsedRecordCodes        []string `json:"usedRecordCodes"`
}
