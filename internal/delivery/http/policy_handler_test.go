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
	"github.com/frontandrew/parklot/internal/usecase/policy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPolicyService - мок сервиса политики штрафов
type MockPolicyService struct {
	mock.Mock
}

func (m *MockPolicyService) Get(ctx context.Context) (*policy.PolicyState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*policy.PolicyState), args.Error(1)
}

func (m *MockPolicyService) Switch(ctx context.Context, p domain.FinePolicy) (*policy.PolicyState, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*policy.PolicyState), args.Error(1)
}

func (m *MockPolicyService) EvaluateLot(ctx context.Context) ([]*policy.Violation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*policy.Violation), args.Error(1)
}

func (m *MockPolicyService) CreateFine(ctx context.Context, plate string, fineType domain.FineType, amount float64) (*domain.Fine, error) {
	args := m.Called(ctx, plate, fineType, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fine), args.Error(1)
}

func (m *MockPolicyService) DeleteFine(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPolicyService) UnpaidFines(ctx context.Context, plate string) ([]*domain.Fine, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Fine), args.Error(1)
}

// TestPolicyHandler_SwitchPolicy тестирует переключение политики
func TestPolicyHandler_SwitchPolicy(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockSetup      func(*MockPolicyService)
		expectedStatus int
	}{
		{
			name:        "успешное переключение",
			requestBody: SwitchPolicyRequest{Policy: domain.PolicyHourly},
			mockSetup: func(m *MockPolicyService) {
				m.On("Switch", mock.Anything, domain.PolicyHourly).
					Return(&policy.PolicyState{
						Active:        domain.PolicyHourly,
						EffectiveFrom: time.Now(),
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "неизвестная политика",
			requestBody: SwitchPolicyRequest{Policy: "weekly"},
			mockSetup: func(m *MockPolicyService) {
				m.On("Switch", mock.Anything, domain.FinePolicy("weekly")).
					Return(nil, domain.ErrUnknownPolicy)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "невалидный JSON",
			requestBody:    "invalid",
			mockSetup:      func(m *MockPolicyService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockPolicyService)
			tt.mockSetup(mockService)

			handler := NewPolicyHandler(mockService, logger.NewNoop())

			var body []byte
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, _ = json.Marshal(tt.requestBody)
			}

			req := httptest.NewRequest(http.MethodPut, "/api/v1/policy", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.SwitchPolicy(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

// TestPolicyHandler_GetPolicy тестирует получение активной политики
func TestPolicyHandler_GetPolicy(t *testing.T) {
	mockService := new(MockPolicyService)
	mockService.On("Get", mock.Anything).
		Return(&policy.PolicyState{Active: domain.PolicyFixed}, nil)

	handler := NewPolicyHandler(mockService, logger.NewNoop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/policy", nil)
	w := httptest.NewRecorder()

	handler.GetPolicy(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &response)
	AssertSuccess(t, response)
	if data, ok := response["data"].(map[string]interface{}); ok {
		assert.Equal(t, "fixed", data["active"])
	}
}

// TestPolicyHandler_EvaluateLot тестирует проверку нарушений
func TestPolicyHandler_EvaluateLot(t *testing.T) {
	t.Run("нарушения найдены", func(t *testing.T) {
		mockService := new(MockPolicyService)
		mockService.On("EvaluateLot", mock.Anything).
			Return([]*policy.Violation{
				{
					SpotID: "F1-R2-S1",
					Fine:   domain.NewFine("ABC123", domain.FineTypeOverstay, 50.0),
				},
			}, nil)

		handler := NewPolicyHandler(mockService, logger.NewNoop())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/policy/evaluate", nil)
		w := httptest.NewRecorder()

		handler.EvaluateLot(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, float64(1), response["count"])
	})

	t.Run("нарушений нет - пустой список", func(t *testing.T) {
		mockService := new(MockPolicyService)
		mockService.On("EvaluateLot", mock.Anything).Return(nil, nil)

		handler := NewPolicyHandler(mockService, logger.NewNoop())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/policy/evaluate", nil)
		w := httptest.NewRecorder()

		handler.EvaluateLot(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, float64(0), response["count"])
	})
}

// TestPolicyHandler_CreateFine тестирует ручное создание штрафа
func TestPolicyHandler_CreateFine(t *testing.T) {
	t.Run("успешное создание", func(t *testing.T) {
		mockService := new(MockPolicyService)
		mockService.On("CreateFine", mock.Anything, "ABC123", domain.FineTypeOverstay, 75.0).
			Return(domain.NewFine("ABC123", domain.FineTypeOverstay, 75.0), nil)

		handler := NewPolicyHandler(mockService, logger.NewNoop())

		body, _ := json.Marshal(CreateFineRequest{
			LicensePlate: "ABC123",
			Type:         domain.FineTypeOverstay,
			Amount:       75.0,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/policy/fines", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateFine(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("невалидные данные", func(t *testing.T) {
		mockService := new(MockPolicyService)
		mockService.On("CreateFine", mock.Anything, "", domain.FineTypeOverstay, 10.0).
			Return(nil, domain.ErrInvalidFineData)

		handler := NewPolicyHandler(mockService, logger.NewNoop())

		body, _ := json.Marshal(CreateFineRequest{Type: domain.FineTypeOverstay, Amount: 10.0})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/policy/fines", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateFine(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// TestPolicyHandler_DeleteFine тестирует удаление штрафа
func TestPolicyHandler_DeleteFine(t *testing.T) {
	t.Run("успешное удаление", func(t *testing.T) {
		fineID := uuid.New()
		mockService := new(MockPolicyService)
		mockService.On("DeleteFine", mock.Anything, fineID).Return(nil)

		handler := NewPolicyHandler(mockService, logger.NewNoop())

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/policy/fines/"+fineID.String(), nil)
		req = withChiParam(req, "id", fineID.String())
		w := httptest.NewRecorder()

		handler.DeleteFine(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("невалидный ID", func(t *testing.T) {
		mockService := new(MockPolicyService)
		handler := NewPolicyHandler(mockService, logger.NewNoop())

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/policy/fines/not-a-uuid", nil)
		req = withChiParam(req, "id", "not-a-uuid")
		w := httptest.NewRecorder()

		handler.DeleteFine(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("штраф не найден", func(t *testing.T) {
		fineID := uuid.New()
		mockService := new(MockPolicyService)
		mockService.On("DeleteFine", mock.Anything, fineID).Return(domain.ErrFineNotFound)

		handler := NewPolicyHandler(mockService, logger.NewNoop())

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/policy/fines/"+fineID.String(), nil)
		req = withChiParam(req, "id", fineID.String())
		w := httptest.NewRecorder()

		handler.DeleteFine(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// TestPolicyHandler_GetUnpaidFines тестирует получение штрафов по номеру
func TestPolicyHandler_GetUnpaidFines(t *testing.T) {
	mockService := new(MockPolicyService)
	mockService.On("UnpaidFines", mock.Anything, "ABC123").
		Return([]*domain.Fine{
			domain.NewFine("ABC123", domain.FineTypeOverstay, 50.0),
		}, nil)

	handler := NewPolicyHandler(mockService, logger.NewNoop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/fines/ABC123", nil)
	req = withChiParam(req, "plate", "ABC123")
	w := httptest.NewRecorder()

	handler.GetUnpaidFines(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &response)
	AssertSuccess(t, response)
}
