package register

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
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, name, email, password)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"name": "Alice", "email": "alice@example.com", "password": "secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "Alice", "alice@example.com", "secret123").
					Return(&models.User{ID: "user-1", Name: "Alice", Email: "alice@example.com"}, "jwt-token", nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"message":"user created successfully"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{broken`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "некорректный email",
			body:           `{"name": "Alice", "email": "not-an-email", "password": "secret123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Email must be a valid email`,
		},
		{
			name:           "короткий пароль",
			body:           `{"name": "Alice", "email": "alice@example.com", "password": "123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Password`,
		},
		{
			name: "email уже занят",
			body: `{"name": "Alice", "email": "alice@example.com", "password": "secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "Alice", "alice@example.com", "secret123").
					Return(nil, "", apperr.Validation("user with this email already exists"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"user with this email already exists"`,
		},
		{
			name: "ошибка сервиса",
			body: `{"name": "Alice", "email": "alice@example.com", "password": "secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "Alice", "alice@example.com", "secret123").
					Return(nil, "", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to register user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/auth/sign-up", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
