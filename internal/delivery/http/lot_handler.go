package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/parklot/internal/domain"
	"github.com/frontandrew/parklot/internal/pkg/logger"
)

// LotService определяет интерфейс для запросов состояния парковки
type LotService interface {
	Status(ctx context.Context) map[string]interface{}
	AvailableSpots(ctx context.Context, vehicleType domain.VehicleType, handicapped bool) []*domain.Spot
}

// LotHandler обрабатывает запросы состояния парковки
type LotHandler struct {
	lotService LotService
	logger     logger.Logger
}

// NewLotHandler создает новый handler
func NewLotHandler(lotService LotService, logger logger.Logger) *LotHandler {
	return &LotHandler{
		lotService: lotService,
		logger:     logger,
	}
}

// GetStatus возвращает сводку занятости
// GET /api/v1/lot
func (h *LotHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    h.lotService.Status(r.Context()),
	})
}

// GetAvailable возвращает свободные совместимые места для типа автомобиля
// GET /api/v1/lot/available?vehicle_type=car&handicapped=true
func (h *LotHandler) GetAvailable(w http.ResponseWriter, r *http.Request) {
	vehicleType := domain.VehicleType(r.URL.Query().Get("vehicle_type"))
	if !vehicleType.IsValid() {
		respondError(w, http.StatusBadRequest, "Unknown vehicle type")
		return
	}
	handicapped := r.URL.Query().Get("handicapped") == "true"

	spots := h.lotService.AvailableSpots(r.Context(), vehicleType, handicapped)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    spots,
		"count":   len(spots),
	})
}
