package save

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bloodaid/bloodaid/internal/domain"
	"github.com/bloodaid/bloodaid/internal/http/middlewarectx"
	"github.com/bloodaid/bloodaid/internal/models"
)

// MockService реализует интерфейс save.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Save(ctx context.Context, contributorName, contributorEmail string, req models.DummyFund) (string, error) {
	args := m.Called(ctx, contributorName, contributorEmail, req)
	return args.String(0), args.Error(1)
}

func TestSaveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		email          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешная запись взноса",
			requestBody: models.DummyFund{AmountCents: 1050, PaymentIntentID: "pi_1"},
			email:       "user@example.com",
			setupMock: func(m *MockService) {
				m.On("Save", mock.Anything, "Test User", "user@example.com", mock.AnythingOfType("models.DummyFund")).
					Return("fund-1", nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":"fund-1"`,
		},
		{
			name:           "сумма не больше нуля",
			requestBody:    models.DummyFund{AmountCents: 0, PaymentIntentID: "pi_1"},
			email:          "user@example.com",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field AmountCents must be greater than 0`,
		},
		{
			name:        "платеж не подтвержден",
			requestBody: models.DummyFund{AmountCents: 1050, PaymentIntentID: "pi_1"},
			email:       "user@example.com",
			setupMock: func(m *MockService) {
				m.On("Save", mock.Anything, "Test User", "user@example.com", mock.AnythingOfType("models.DummyFund")).
					Return("", fmt.Errorf("services.fund.Save: %w", domain.ErrPaymentNotConfirmed))
			},
			expectedStatus: http.StatusPaymentRequired,
			expectedBody:   `{"status":"Error","error":"payment is not confirmed by the processor"}`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    models.DummyFund{AmountCents: 1050, PaymentIntentID: "pi_1"},
			email:          "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			body, err := json.Marshal(tt.requestBody)
			assert.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/save-fund", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := req.Context()
			if tt.email != "" {
				ctx = context.WithValue(ctx, middlewarectx.User, tt.email)
				ctx = context.WithValue(ctx, middlewarectx.UserName, "Test User")
				ctx = context.WithValue(ctx, middlewarectx.Role, models.RoleDonor)
			}
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
