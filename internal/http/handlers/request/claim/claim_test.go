package claim

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bloodaid/bloodaid/internal/domain"
	"github.com/bloodaid/bloodaid/internal/http/middlewarectx"
	"github.com/bloodaid/bloodaid/internal/models"
	"github.com/bloodaid/bloodaid/internal/services/request"
)

// MockService реализует интерфейс claim.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Claim(ctx context.Context, id string, actor request.Actor) (*models.DonationRequest, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DonationRequest), args.Error(1)
}

func TestClaimHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestID      string
		email          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "успешное подтверждение",
			requestID: "req-1",
			email:     "donor@example.com",
			setupMock: func(m *MockService) {
				m.On("Claim", mock.Anything, "req-1", mock.AnythingOfType("request.Actor")).
					Return(&models.DonationRequest{
						ID:         "req-1",
						Status:     models.RequestStatusInProgress,
						DonorEmail: "donor@example.com",
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"inprogress"`,
		},
		{
			name:      "проигранная гонка дает 409",
			requestID: "req-1",
			email:     "donor@example.com",
			setupMock: func(m *MockService) {
				m.On("Claim", mock.Anything, "req-1", mock.AnythingOfType("request.Actor")).
					Return(nil, fmt.Errorf("services.request.Claim: %w", domain.ErrConflict))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"status conflict"}`,
		},
		{
			name:      "несуществующий запрос дает 404",
			requestID: "missing",
			email:     "donor@example.com",
			setupMock: func(m *MockService) {
				m.On("Claim", mock.Anything, "missing", mock.AnythingOfType("request.Actor")).
					Return(nil, fmt.Errorf("services.request.Claim: %w", domain.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"not found"}`,
		},
		{
			name:      "заблокированный пользователь дает 403",
			requestID: "req-1",
			email:     "blocked@example.com",
			setupMock: func(m *MockService) {
				m.On("Claim", mock.Anything, "req-1", mock.AnythingOfType("request.Actor")).
					Return(nil, fmt.Errorf("services.request.Claim: %w", domain.ErrUserBlocked))
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"user is blocked"}`,
		},
		{
			name:           "отсутствует авторизация",
			requestID:      "req-1",
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

			req := httptest.NewRequest(http.MethodPost, "/donation-requests/"+tt.requestID+"/confirm", nil)

			ctx := req.Context()
			if tt.email != "" {
				ctx = context.WithValue(ctx, middlewarectx.User, tt.email)
				ctx = context.WithValue(ctx, middlewarectx.UserName, "Test User")
				ctx = context.WithValue(ctx, middlewarectx.Role, models.RoleDonor)
			}
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.requestID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
