package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jovannirio-prog/petvizor-engine/pkg/apperrors"
	"github.com/jovannirio-prog/petvizor-engine/pkg/knowledge"
	"github.com/jovannirio-prog/petvizor-engine/pkg/logging"
	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
	"github.com/jovannirio-prog/petvizor-engine/pkg/prompts"
	"github.com/jovannirio-prog/petvizor-engine/pkg/repositories"
	"github.com/jovannirio-prog/petvizor-engine/pkg/retrieval"
)

// KnowledgeProvider serves the current knowledge snapshot.
// *knowledge.Cache is the production implementation.
type KnowledgeProvider interface {
	Get(ctx context.Context) []models.KnowledgeRecord
}

// ConsultationRequest carries one consultation question with its context.
type ConsultationRequest struct {
	UserID    string
	Role      string // claimed role; resolved by the RoleResolver
	Message   string
	Pet       *models.PetProfile
	SessionID string
	History   []models.ConversationTurn // caller-supplied, oldest first
}

// ConsultationService orchestrates a consultation: knowledge retrieval,
// prompt composition, response generation and best-effort persistence.
// Once validation passes its failure mode is a degraded answer, never an
// error.
type ConsultationService interface {
	Consult(ctx context.Context, req *ConsultationRequest) (*models.ConsultationResult, error)
}

// ConsultationConfig tunes the orchestrator.
type ConsultationConfig struct {
	// HistoryLimit caps conversation turns reconstructed from stored
	// exchanges.
	HistoryLimit int
	// MaxHistoryTurns caps caller-supplied history before prompt
	// composition.
	MaxHistoryTurns int
}

type consultationService struct {
	cache        KnowledgeProvider
	retriever    *retrieval.Retriever
	generator    ResponseGenerator
	persister    ExchangePersister
	exchangeRepo repositories.ExchangeRepository // nil when running without a database
	roleResolver RoleResolver
	cfg          ConsultationConfig
	logger       *zap.Logger
}

// NewConsultationService creates the consultation orchestrator.
func NewConsultationService(
	cache KnowledgeProvider,
	retriever *retrieval.Retriever,
	generator ResponseGenerator,
	persister ExchangePersister,
	exchangeRepo repositories.ExchangeRepository,
	roleResolver RoleResolver,
	cfg ConsultationConfig,
	logger *zap.Logger,
) ConsultationService {
	return &consultationService{
		cache:        cache,
		retriever:    retriever,
		generator:    generator,
		persister:    persister,
		exchangeRepo: exchangeRepo,
		roleResolver: roleResolver,
		cfg:          cfg,
		logger:       logger.Named("consultation"),
	}
}

var _ ConsultationService = (*consultationService)(nil)

func (s *consultationService) Consult(ctx context.Context, req *ConsultationRequest) (*models.ConsultationResult, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperrors.ErrEmptyMessage
	}

	role := s.roleResolver.Resolve(ctx, req.UserID, req.Role)
	history := s.resolveHistory(ctx, req)

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	records := s.cache.Get(ctx)
	top := s.retriever.Retrieve(message, records)

	prompt := prompts.Compose(role, top, req.Pet, history)
	response := s.generator.Generate(ctx, prompt, message, history)

	s.persister.Persist(&models.Exchange{
		UserID:    req.UserID,
		Message:   message,
		Response:  response,
		SessionID: sessionID,
	})

	result := &models.ConsultationResult{
		Response:  response,
		SessionID: sessionID,
		Sources:   citations(top),
		Context: models.ConsultationContext{
			UserRole:               role,
			KnowledgeBaseSize:      len(records),
			RelevantKnowledgeFound: len(top),
			UsedRecordCodes:        recordCodes(top),
		},
	}

	s.logger.Info("Consultation completed",
		zap.String("user_id", req.UserID),
		zap.String("role", role),
		zap.String("message_preview", logging.TruncateString(message, 80)),
		zap.Int("knowledge_base_size", len(records)),
		zap.Int("relevant_records", len(top)))

	return result, nil
}

// resolveHistory prefers caller-supplied history and otherwise reconstructs
// it best-effort from persisted exchanges. Reconstruction failures degrade
// to an empty conversation.
func (s *consultationService) resolveHistory(ctx context.Context, req *ConsultationRequest) []models.ConversationTurn {
	if len(req.History) > 0 {
		if s.cfg.MaxHistoryTurns > 0 && len(req.History) > s.cfg.MaxHistoryTurns {
			return req.History[len(req.History)-s.cfg.MaxHistoryTurns:]
		}
		return req.History
	}

	if s.exchangeRepo == nil || req.UserID == "" {
		return nil
	}

	exchanges, err := s.exchangeRepo.GetRecentByUser(ctx, req.UserID, s.cfg.HistoryLimit)
	if err != nil {
		s.logger.Warn("Failed to reconstruct conversation history",
			zap.String("user_id", req.UserID),
			zap.Error(err))
		return nil
	}

	// Exchanges arrive newest first; rebuild oldest-first turns and keep
	// the most recent HistoryLimit of them.
	var turns []models.ConversationTurn
	for i := len(exchanges) - 1; i >= 0; i-- {
		turns = append(turns,
			models.ConversationTurn{Role: models.TurnRoleUser, Content: exchanges[i].Message},
			models.ConversationTurn{Role: models.TurnRoleAssistant, Content: exchanges[i].Response},
		)
	}
	if s.cfg.HistoryLimit > 0 && len(turns) > s.cfg.HistoryLimit {
		turns = turns[len(turns)-s.cfg.HistoryLimit:]
	}
	return turns
}

// citations renders the retrieved records as a human-readable source list,
// one "{code} ({tableName}): {title}" line per record. Nil when nothing
// was retrieved.
func citations(records []models.KnowledgeRecord) *string {
	if len(records) == 0 {
		return nil
	}

	lines := make([]string, len(records))
	for i, record := range records {
		cfg := knowledge.Lookup(record.Table)
		lines[i] = record.Code + " (" + record.TableName + "): " + cfg.Title(record)
	}
	s := strings.Join(lines, "\n")
	return &s
}

func recordCodes(records []models.KnowledgeRecord) []string {
	codes := make([]string, len(records))
	for i, record := range records {
		codes[i] = record.Code
	}
	return codes
}
