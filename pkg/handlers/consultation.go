package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jovannirio-prog/petvizor-engine/pkg/apperrors"
	"github.com/jovannirio-prog/petvizor-engine/pkg/auth"
	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
	"github.com/jovannirio-prog/petvizor-engine/pkg/services"
)

// ConsultationRequest for POST /api/consultation
type ConsultationRequest struct {
	Message             string                    `json:"message"`
	PetInfo             *models.PetProfile        `json:"petInfo,omitempty"`
	SessionID           string                    `json:"sessionId,omitempty"`
	ConversationHistory []models.ConversationTurn `json:"conversationHistory,omitempty"`
}

// ConsultationHandler handles consultation HTTP requests.
type ConsultationHandler struct {
	service services.ConsultationService
	logger  *zap.Logger
}

// NewConsultationHandler creates a new consultation handler.
func NewConsultationHandler(service services.ConsultationService, logger *zap.Logger) *ConsultationHandler {
	return &ConsultationHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the consultation handler's routes on the given mux.
func (h *ConsultationHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/consultation", authMiddleware.RequireAuth(h.Consult))
}

// Consult handles POST /api/consultation
func (h *ConsultationHandler) Consult(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.GetClaims(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req ConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	result, err := h.service.Consult(r.Context(), &services.ConsultationRequest{
		UserID:    claims.UserID(),
		Role:      claims.Role,
		Message:   req.Message,
		Pet:       req.PetInfo,
		SessionID: req.SessionID,
		History:   req.ConversationHistory,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmptyMessage) {
			if err := ErrorResponse(w, http.StatusBadRequest, "empty_message", "Message is required"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Consultation failed",
			zap.String("user_id", claims.UserID()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "consultation_failed", "Failed to process consultation"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
