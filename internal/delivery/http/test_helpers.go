package http

import (
	"testing"
	"time"

	"github.com/frontandrew/parklot/internal/domain"
)

// CreateTestVehicle создает тестовый автомобиль с активной сессией
func CreateTestVehicle(plate string, entry time.Time) *domain.Vehicle {
	return &domain.Vehicle{
		LicensePlate: plate,
		Type:         domain.VehicleTypeCar,
		EntryTime:    entry,
	}
}

// CreateTestSpot создает тестовое место
func CreateTestSpot(floor, row, index int, spotType domain.SpotType) *domain.Spot {
	return domain.NewSpot(floor, row, index, spotType)
}

// AssertSuccess проверяет успешный ответ API
func AssertSuccess(t *testing.T, response map[string]interface{}) {
	t.Helper()
	success, ok := response["success"].(bool)
	if !ok || !success {
		t.Errorf("Expected success=true, got %v", response)
	}
}
