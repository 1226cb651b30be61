package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frontandrew/parklot/internal/domain"
	"github.com/frontandrew/parklot/internal/pkg/logger"
	"github.com/frontandrew/parklot/internal/usecase/parking"
)

// ParkingService определяет интерфейс для сервиса въезда и выезда
type ParkingService interface {
	Enter(ctx context.Context, req *parking.EntryRequest) (*parking.EntryResult, error)
	Lookup(ctx context.Context, plate string) *parking.ActiveSession
	Summarize(ctx context.Context, plate string) (*parking.ExitSummary, error)
	Settle(ctx context.Context, req *parking.SettleRequest) (*parking.Settlement, error)
}

// ParkingHandler обрабатывает запросы въезда и выезда
type ParkingHandler struct {
	parkingService ParkingService
	logger         logger.Logger
}

// NewParkingHandler создает новый handler
func NewParkingHandler(parkingService ParkingService, logger logger.Logger) *ParkingHandler {
	return &ParkingHandler{
		parkingService: parkingService,
		logger:         logger,
	}
}

// Enter ставит автомобиль на место
// POST /api/v1/parking/enter
func (h *ParkingHandler) Enter(w http.ResponseWriter, r *http.Request) {
	var req parking.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.parkingService.Enter(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyLicensePlate),
			errors.Is(err, domain.ErrMissingVehicleType),
			errors.Is(err, domain.ErrEmptySpotID),
			errors.Is(err, domain.ErrIncompatibleSpot):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrSpotNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrDuplicateEntry),
			errors.Is(err, domain.ErrSpotOccupied):
			respondError(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error("Failed to process entry", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to process entry")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

// GetActive возвращает активную сессию по номеру
// GET /api/v1/parking/active/{plate}
func (h *ParkingHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	plate := getPathParam(r, "plate")
	if plate == "" {
		respondError(w, http.StatusBadRequest, "License plate required")
		return
	}

	session := h.parkingService.Lookup(r.Context(), plate)
	if session == nil {
		respondError(w, http.StatusNotFound, "No active parking session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    session,
	})
}

// GetSummary возвращает расчет при выезде без закрытия сессии
// GET /api/v1/parking/summary/{plate}
func (h *ParkingHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	plate := getPathParam(r, "plate")
	if plate == "" {
		respondError(w, http.StatusBadRequest, "License plate required")
		return
	}

	summary, err := h.parkingService.Summarize(r.Context(), plate)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Failed to build exit summary", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to build exit summary")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    summary,
	})
}

// Exit принимает оплату и закрывает сессию
// POST /api/v1/parking/exit
func (h *ParkingHandler) Exit(w http.ResponseWriter, r *http.Request) {
	var req parking.SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	settlement, err := h.parkingService.Settle(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNegativePayment):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNoActiveSession):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			h.logger.Error("Failed to settle exit", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to settle exit")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    settlement,
	})
}
