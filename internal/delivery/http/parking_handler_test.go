package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frontandrew/parklot/internal/domain"
	"github.com/frontandrew/parklot/internal/pkg/logger"
	"github.com/frontandrew/parklot/internal/usecase/parking"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockParkingService - мок сервиса въезда и выезда
type MockParkingService struct {
	mock.Mock
}

func (m *MockParkingService) Enter(ctx context.Context, req *parking.EntryRequest) (*parking.EntryResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parking.EntryResult), args.Error(1)
}

func (m *MockParkingService) Lookup(ctx context.Context, plate string) *parking.ActiveSession {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*parking.ActiveSession)
}

func (m *MockParkingService) Summarize(ctx context.Context, plate string) (*parking.ExitSummary, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parking.ExitSummary), args.Error(1)
}

func (m *MockParkingService) Settle(ctx context.Context, req *parking.SettleRequest) (*parking.Settlement, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parking.Settlement), args.Error(1)
}

// withChiParam добавляет параметр маршрута chi в контекст запроса
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// TestParkingHandler_Enter тестирует въезд
func TestParkingHandler_Enter(t *testing.T) {
	entry := time.Date(2025, 3, 10, 9, 5, 30, 0, time.UTC)

	tests := []struct {
		name           string
		requestBody    interface{}
		mockSetup      func(*MockParkingService)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name: "успешный въезд",
			requestBody: parking.EntryRequest{
				LicensePlate: "ABC123",
				VehicleType:  domain.VehicleTypeCar,
				SpotID:       "F1-R2-S1",
			},
			mockSetup: func(m *MockParkingService) {
				vehicle := CreateTestVehicle("ABC123", entry)
				spot := CreateTestSpot(1, 2, 1, domain.SpotTypeRegular)
				spot.Occupy(vehicle)
				m.On("Enter", mock.Anything, mock.AnythingOfType("*parking.EntryRequest")).
					Return(&parking.EntryResult{
						Vehicle: vehicle,
						Spot:    spot,
						Ticket:  vehicle.TicketNumber(),
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				AssertSuccess(t, resp)
				if data, ok := resp["data"].(map[string]interface{}); ok {
					assert.Equal(t, "T-ABC123-20250310090530", data["ticket"])
				}
			},
		},
		{
			name: "дубликат номера",
			requestBody: parking.EntryRequest{
				LicensePlate: "ABC123",
				VehicleType:  domain.VehicleTypeCar,
				SpotID:       "F1-R2-S2",
			},
			mockSetup: func(m *MockParkingService) {
				m.On("Enter", mock.Anything, mock.AnythingOfType("*parking.EntryRequest")).
					Return(nil, domain.ErrDuplicateEntry)
			},
			expectedStatus: http.StatusConflict,
			checkResponse:  func(t *testing.T, resp map[string]interface{}) {},
		},
		{
			name: "место занято",
			requestBody: parking.EntryRequest{
				LicensePlate: "DEF456",
				VehicleType:  domain.VehicleTypeCar,
				SpotID:       "F1-R2-S1",
			},
			mockSetup: func(m *MockParkingService) {
				m.On("Enter", mock.Anything, mock.AnythingOfType("*parking.EntryRequest")).
					Return(nil, domain.ErrSpotOccupied)
			},
			expectedStatus: http.StatusConflict,
			checkResponse:  func(t *testing.T, resp map[string]interface{}) {},
		},
		{
			name: "место не существует",
			requestBody: parking.EntryRequest{
				LicensePlate: "DEF456",
				VehicleType:  domain.VehicleTypeCar,
				SpotID:       "F9-R9-S9",
			},
			mockSetup: func(m *MockParkingService) {
				m.On("Enter", mock.Anything, mock.AnythingOfType("*parking.EntryRequest")).
					Return(nil, domain.ErrSpotNotFound)
			},
			expectedStatus: http.StatusNotFound,
			checkResponse:  func(t *testing.T, resp map[string]interface{}) {},
		},
		{
			name: "несовместимое место",
			requestBody: parking.EntryRequest{
				LicensePlate: "DEF456",
				VehicleType:  domain.VehicleTypeTruck,
				SpotID:       "F1-R1-S1",
			},
			mockSetup: func(m *MockParkingService) {
				m.On("Enter", mock.Anything, mock.AnythingOfType("*parking.EntryRequest")).
					Return(nil, domain.ErrIncompatibleSpot)
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse:  func(t *testing.T, resp map[string]interface{}) {},
		},
		{
			name:           "невалидный JSON",
			requestBody:    "invalid",
			mockSetup:      func(m *MockParkingService) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse:  func(t *testing.T, resp map[string]interface{}) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockParkingService)
			tt.mockSetup(mockService)

			handler := NewParkingHandler(mockService, logger.NewNoop())

			var body []byte
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, _ = json.Marshal(tt.requestBody)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/parking/enter", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Enter(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)
			tt.checkResponse(t, response)

			mockService.AssertExpectations(t)
		})
	}
}

// TestParkingHandler_GetActive тестирует поиск активной сессии
func TestParkingHandler_GetActive(t *testing.T) {
	t.Run("сессия найдена", func(t *testing.T) {
		mockService := new(MockParkingService)
		vehicle := CreateTestVehicle("ABC123", time.Now())
		spot := CreateTestSpot(1, 2, 1, domain.SpotTypeRegular)
		mockService.On("Lookup", mock.Anything, "ABC123").
			Return(&parking.ActiveSession{Vehicle: vehicle, Spot: spot})

		handler := NewParkingHandler(mockService, logger.NewNoop())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/parking/active/ABC123", nil)
		req = withChiParam(req, "plate", "ABC123")
		w := httptest.NewRecorder()

		handler.GetActive(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("сессии нет", func(t *testing.T) {
		mockService := new(MockParkingService)
		mockService.On("Lookup", mock.Anything, "ABC123").Return(nil)

		handler := NewParkingHandler(mockService, logger.NewNoop())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/parking/active/ABC123", nil)
		req = withChiParam(req, "plate", "ABC123")
		w := httptest.NewRecorder()

		handler.GetActive(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// TestParkingHandler_GetSummary тестирует расчет при выезде
func TestParkingHandler_GetSummary(t *testing.T) {
	t.Run("расчет построен", func(t *testing.T) {
		mockService := new(MockParkingService)
		vehicle := CreateTestVehicle("ABC123", time.Now().Add(-90*time.Minute))
		spot := CreateTestSpot(1, 2, 1, domain.SpotTypeRegular)
		mockService.On("Summarize", mock.Anything, "ABC123").
			Return(&parking.ExitSummary{
				Vehicle:       vehicle,
				Spot:          spot,
				DurationHours: 2,
				ParkingFee:    10.0,
				TotalDue:      10.0,
			}, nil)

		handler := NewParkingHandler(mockService, logger.NewNoop())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/parking/summary/ABC123", nil)
		req = withChiParam(req, "plate", "ABC123")
		w := httptest.NewRecorder()

		handler.GetSummary(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &response)
		if data, ok := response["data"].(map[string]interface{}); ok {
			assert.Equal(t, float64(2), data["duration_hours"])
			assert.Equal(t, 10.0, data["total_due"])
		}
	})

	t.Run("сессии нет", func(t *testing.T) {
		mockService := new(MockParkingService)
		mockService.On("Summarize", mock.Anything, "ABC123").
			Return(nil, domain.ErrNoActiveSession)

		handler := NewParkingHandler(mockService, logger.NewNoop())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/parking/summary/ABC123", nil)
		req = withChiParam(req, "plate", "ABC123")
		w := httptest.NewRecorder()

		handler.GetSummary(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// TestParkingHandler_Exit тестирует оплату и выезд
func TestParkingHandler_Exit(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockSetup      func(*MockParkingService)
		expectedStatus int
	}{
		{
			name: "успешный выезд",
			requestBody: parking.SettleRequest{
				LicensePlate: "ABC123",
				AmountPaid:   10.0,
				Method:       domain.PaymentMethodCard,
			},
			mockSetup: func(m *MockParkingService) {
				m.On("Settle", mock.Anything, mock.AnythingOfType("*parking.SettleRequest")).
					Return(&parking.Settlement{
						Summary:    &parking.ExitSummary{TotalDue: 10.0},
						Payment:    domain.NewPayment("ABC123", 10.0, 0, 10.0, domain.PaymentMethodCard),
						Sufficient: true,
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "отрицательная оплата",
			requestBody: parking.SettleRequest{
				LicensePlate: "ABC123",
				AmountPaid:   -5.0,
			},
			mockSetup: func(m *MockParkingService) {
				m.On("Settle", mock.Anything, mock.AnythingOfType("*parking.SettleRequest")).
					Return(nil, domain.ErrNegativePayment)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "сессии нет",
			requestBody: parking.SettleRequest{
				LicensePlate: "GONE",
				AmountPaid:   10.0,
			},
			mockSetup: func(m *MockParkingService) {
				m.On("Settle", mock.Anything, mock.AnythingOfType("*parking.SettleRequest")).
					Return(nil, domain.ErrNoActiveSession)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockParkingService)
			tt.mockSetup(mockService)

			handler := NewParkingHandler(mockService, logger.NewNoop())

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/parking/exit", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Exit(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
