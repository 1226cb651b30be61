package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frontandrew/parklot/internal/domain"
	"github.com/frontandrew/parklot/internal/pkg/logger"
	"github.com/frontandrew/parklot/internal/usecase/policy"
	"github.com/google/uuid"
)

// PolicyService определяет интерфейс для сервиса политики штрафов
type PolicyService interface {
	Get(ctx context.Context) (*policy.PolicyState, error)
	Switch(ctx context.Context, p domain.FinePolicy) (*policy.PolicyState, error)
	EvaluateLot(ctx context.Context) ([]*policy.Violation, error)
	CreateFine(ctx context.Context, plate string, fineType domain.FineType, amount float64) (*domain.Fine, error)
	DeleteFine(ctx context.Context, id uuid.UUID) error
	UnpaidFines(ctx context.Context, plate string) ([]*domain.Fine, error)
}

// PolicyHandler обрабатывает запросы политики штрафов и ручного
// управления штрафами
type PolicyHandler struct {
	policyService PolicyService
	logger        logger.Logger
}

// NewPolicyHandler создает новый handler
func NewPolicyHandler(policyService PolicyService, logger logger.Logger) *PolicyHandler {
	return &PolicyHandler{
		policyService: policyService,
		logger:        logger,
	}
}

// SwitchPolicyRequest - запрос на переключение политики
type SwitchPolicyRequest struct {
	Policy domain.FinePolicy `json:"policy" validate:"required"`
}

// CreateFineRequest - запрос на ручное создание штрафа
type CreateFineRequest struct {
	LicensePlate string          `json:"license_plate" validate:"required"`
	Type         domain.FineType `json:"type" validate:"required"`
	Amount       float64         `json:"amount"`
}

// GetPolicy возвращает активную политику штрафов
// GET /api/v1/policy
func (h *PolicyHandler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	state, err := h.policyService.Get(r.Context())
	if err != nil {
		h.logger.Error("Failed to get fine policy", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get fine policy")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    state,
	})
}

// SwitchPolicy переключает активную политику штрафов
// PUT /api/v1/policy
func (h *PolicyHandler) SwitchPolicy(w http.ResponseWriter, r *http.Request) {
	var req SwitchPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	state, err := h.policyService.Switch(r.Context(), req.Policy)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownPolicy) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to switch fine policy", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to switch fine policy")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    state,
	})
}

// EvaluateLot проверяет нарушения по всем занятым местам
// POST /api/v1/policy/evaluate
func (h *PolicyHandler) EvaluateLot(w http.ResponseWriter, r *http.Request) {
	violations, err := h.policyService.EvaluateLot(r.Context())
	if err != nil {
		h.logger.Error("Failed to evaluate lot violations", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to evaluate violations")
		return
	}

	if violations == nil {
		violations = []*policy.Violation{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    violations,
		"count":   len(violations),
	})
}

// GetUnpaidFines возвращает неоплаченные штрафы по номеру
// GET /api/v1/fines/{plate}
func (h *PolicyHandler) GetUnpaidFines(w http.ResponseWriter, r *http.Request) {
	plate := getPathParam(r, "plate")
	if plate == "" {
		respondError(w, http.StatusBadRequest, "License plate required")
		return
	}

	fines, err := h.policyService.UnpaidFines(r.Context(), plate)
	if err != nil {
		h.logger.Error("Failed to get unpaid fines", map[string]interface{}{
			"plate": plate,
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get fines")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    fines,
	})
}

// CreateFine создает штраф вручную
// POST /api/v1/policy/fines
func (h *PolicyHandler) CreateFine(w http.ResponseWriter, r *http.Request) {
	var req CreateFineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fine, err := h.policyService.CreateFine(r.Context(), req.LicensePlate, req.Type, req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFineData) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to create fine", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to create fine")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    fine,
	})
}

// DeleteFine удаляет штраф
// DELETE /api/v1/policy/fines/{id}
func (h *PolicyHandler) DeleteFine(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(getPathParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid fine ID")
		return
	}

	if err := h.policyService.DeleteFine(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrFineNotFound) {
			respondError(w, http.StatusNotFound, "Fine not found")
			return
		}
		h.logger.Error("Failed to delete fine", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to delete fine")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
