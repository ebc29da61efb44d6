package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/jovannirio-prog/petvizor-engine/pkg/apperrors"
	"github.com/jovannirio-prog/petvizor-engine/pkg/auth"
	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
	"github.com/jovannirio-prog/petvizor-engine/pkg/services"
)

// mockConsultationService is a simple mock for handler unit tests.
type mockConsultationService struct {
	ConsultFunc func(ctx context.Context, req *services.ConsultationRequest) (*models.ConsultationResult, error)

	ConsultCalls int
	LastRequest  *services.ConsultationRequest
}

func (m *mockConsultationService) Consult(ctx context.Context, req *services.ConsultationRequest) (*models.ConsultationResult, error) {
	m.ConsultCalls++
	m.LastRequest = req
	if m.ConsultFunc != nil {
		return m.ConsultFunc(ctx, req)
	}
	return &models.ConsultationResult{Response: "ok", SessionID: "s-1"}, nil
}

func newConsultationRequest(t *testing.T, body any, claims *auth.Claims) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if raw, ok := body.(string); ok {
		buf.WriteString(raw)
	} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("failed to encode request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/consultation", &buf)
	if claims != nil {
		ctx := context.WithValue(req.Context(), auth.ClaimsKey, claims)
		req = req.WithContext(ctx)
	}
	return req
}

func ownerClaims() *auth.Claims {
	return &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-42"},
		Role:             models.RoleOwner,
	}
}

func TestConsultationHandler_Consult_Success(t *testing.T) {
	sources := "PRICES_1 (Pricing): Вакцинация"
	mockSvc := &mockConsultationService{
		ConsultFunc: func(ctx context.Context, req *services.ConsultationRequest) (*models.ConsultationResult, error) {
			return &models.ConsultationResult{
				Response:  "Вакцинация стоит 1500 рублей.",
				SessionID: "session-1",
				Sources:   &sources,
				Context: models.ConsultationContext{
					UserRole:               models.RoleOwner,
					KnowledgeBaseSize:      12,
					RelevantKnowledgeFound: 1,
					UsedRecordCodes:        []string{"PRICES_1"},
				},
			}, nil
		},
	}
	handler := NewConsultationHandler(mockSvc, zap.NewNop())

	body := ConsultationRequest{
		Message:   "сколько стоит вакцинация",
		SessionID: "session-1",
	}
	req := newConsultationRequest(t, body, ownerClaims())
	rec := httptest.NewRecorder()

	handler.Consult(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var result models.ConsultationResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Response != "Вакцинация стоит 1500 рублей." {
		t.Errorf("unexpected response text: %q", result.Response)
	}
	if result.Sources == nil || *result.Sources != sources {
		t.Error("sources not passed through")
	}

	if mockSvc.LastRequest.UserID != "user-42" {
		t.Errorf("expected user id from claims, got %q", mockSvc.LastRequest.UserID)
	}
	if mockSvc.LastRequest.Role != models.RoleOwner {
		t.Errorf("expected role from claims, got %q", mockSvc.LastRequest.Role)
	}
}

func TestConsultationHandler_Consult_PassesPetAndHistory(t *testing.T) {
	mockSvc := &mockConsultationService{}
	handler := NewConsultationHandler(mockSvc, zap.NewNop())

	body := ConsultationRequest{
		Message: "чем кормить",
		PetInfo: &models.PetProfile{Name: "Барсик", Species: "кот"},
		ConversationHistory: []models.ConversationTurn{
			{Role: models.TurnRoleUser, Content: "привет"},
			{Role: models.TurnRoleAssistant, Content: "здравствуйте"},
		},
	}
	req := newConsultationRequest(t, body, ownerClaims())
	rec := httptest.NewRecorder()

	handler.Consult(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if mockSvc.LastRequest.Pet == nil || mockSvc.LastRequest.Pet.Name != "Барсик" {
		t.Errorf("pet profile not passed through: %+v", mockSvc.LastRequest.Pet)
	}
	if len(mockSvc.LastRequest.History) != 2 {
		t.Errorf("expected 2 history turns, got %d", len(mockSvc.LastRequest.History))
	}
}

func TestConsultationHandler_Consult_MissingClaims(t *testing.T) {
	mockSvc := &mockConsultationService{}
	handler := NewConsultationHandler(mockSvc, zap.NewNop())

	req := newConsultationRequest(t, ConsultationRequest{Message: "вопрос"}, nil)
	rec := httptest.NewRecorder()

	handler.Consult(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if mockSvc.ConsultCalls != 0 {
		t.Error("service must not be called without claims")
	}
}

func TestConsultationHandler_Consult_InvalidBody(t *testing.T) {
	handler := NewConsultationHandler(&mockConsultationService{}, zap.NewNop())

	req := newConsultationRequest(t, "{not json", ownerClaims())
	rec := httptest.NewRecorder()

	handler.Consult(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestConsultationHandler_Consult_EmptyMessage(t *testing.T) {
	mockSvc := &mockConsultationService{
		ConsultFunc: func(ctx context.Context, req *services.ConsultationRequest) (*models.ConsultationResult, error) {
			return nil, apperrors.ErrEmptyMessage
		},
	}
	handler := NewConsultationHandler(mockSvc, zap.NewNop())

	req := newConsultationRequest(t, ConsultationRequest{Message: "   "}, ownerClaims())
	rec := httptest.NewRecorder()

	handler.Consult(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if body["error"] != "empty_message" {
		t.Errorf("expected error code 'empty_message', got %q", body["error"])
	}
}

func TestConsultationHandler_Consult_ServiceError(t *testing.T) {
	mockSvc := &mockConsultationService{
		ConsultFunc: func(ctx context.Context, req *services.ConsultationRequest) (*models.ConsultationResult, error) {
			return nil, errors.New("boom")
		},
	}
	handler := NewConsultationHandler(mockSvc, zap.NewNop())

	req := newConsultationRequest(t, ConsultationRequest{Message: "вопрос"}, ownerClaims())
	rec := httptest.NewRecorder()

	handler.Consult(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}
