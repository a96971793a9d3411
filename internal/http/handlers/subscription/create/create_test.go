package create

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/apperr"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userID string, req models.DummyEntry) (*models.Subscription, error) {
	args := m.Called(ctx, userID, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	validBody := `{
		"name": "Netflix",
		"company": "Netflix Inc",
		"price": 15.99,
		"currency": "USD",
		"frequency": "monthly",
		"category": "entertainment",
		"paymentMethod": "credit card",
		"startDate": "2025-01-01"
	}`

	tests := []struct {
		name           string
		body           string
		userID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешное создание подписки",
			body:   validBody,
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "user-1", mock.MatchedBy(func(req models.DummyEntry) bool {
					return req.Name == "Netflix" && req.Frequency == "monthly"
				})).Return(&models.Subscription{ID: "sub-1", UserID: "user-1", Name: "Netflix"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"name":"Netflix"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{broken`,
			userID:         "user-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "отсутствуют обязательные поля",
			body:           `{"name": "Netflix"}`,
			userID:         "user-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Company is a required field`,
		},
		{
			name:           "отрицательная цена",
			body:           `{"name":"Netflix","company":"Netflix Inc","price":-5,"category":"x","paymentMethod":"card"}`,
			userID:         "user-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Price must be non-negative`,
		},
		{
			name:           "неподдерживаемая периодичность",
			body:           `{"name":"Netflix","company":"Netflix Inc","price":5,"frequency":"quarterly","category":"x","paymentMethod":"card"}`,
			userID:         "user-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Frequency has an unsupported value`,
		},
		{
			name:           "нет пользователя в контексте",
			body:           validBody,
			userID:         "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:   "нераспознанная дата отклоняется сервисом с конвертом ошибки",
			body:   `{"name":"Netflix","company":"Netflix Inc","price":5,"category":"x","paymentMethod":"card","startDate":"31-12-2024"}`,
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "user-1", mock.MatchedBy(func(req models.DummyEntry) bool {
					return req.StartDate == "31-12-2024"
				})).Return(nil, apperr.Validation("invalid start date"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid start date"`,
		},
		{
			name:   "ошибка валидации из сервиса",
			body:   validBody,
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "user-1", mock.Anything).
					Return(nil, apperr.Validation("invalid start date"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid start date"`,
		},
		{
			name:   "ошибка сервиса",
			body:   validBody,
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "user-1", mock.Anything).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not create subscription"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/subscriptions", strings.NewReader(tt.body))
			if tt.userID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, tt.userID))
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
