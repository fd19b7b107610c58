package create

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
	"github.com/bloodaid/bloodaid/internal/services/request"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, actor request.Actor, req models.DummyRequest) (string, error) {
	args := m.Called(ctx, actor, req)
	return args.String(0), args.Error(1)
}

func validBody() models.DummyRequest {
	return models.DummyRequest{
		RecipientName:     "Rahim Uddin",
		RecipientDistrict: "Dhaka",
		RecipientUpazila:  "Savar",
		HospitalName:      "Dhaka Medical College",
		FullAddress:       "Secretariat Road, Dhaka",
		BloodGroup:        "A+",
		DonationDate:      "2026-09-15",
		DonationTime:      "10:30",
		RequestMessage:    "urgent surgery",
	}
}

func TestCreateHandler(t *testing.T) {
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
			name:        "успешное создание запроса",
			requestBody: validBody(),
			email:       "donor@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.AnythingOfType("request.Actor"), mock.AnythingOfType("models.DummyRequest")).
					Return("req-1", nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":"req-1"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			email:          "donor@example.com",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "ошибка валидации при пустых полях",
			requestBody: models.DummyRequest{
				RecipientName: "Rahim Uddin",
				BloodGroup:    "A+",
			},
			email:          "donor@example.com",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field RecipientDistrict is a required field`,
		},
		{
			name: "некорректная группа крови",
			requestBody: func() models.DummyRequest {
				b := validBody()
				b.BloodGroup = "X+"
				return b
			}(),
			email:          "donor@example.com",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field BloodGroup must be one of`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    validBody(),
			email:          "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:        "заблокированный пользователь",
			requestBody: validBody(),
			email:       "blocked@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.AnythingOfType("request.Actor"), mock.AnythingOfType("models.DummyRequest")).
					Return("", fmt.Errorf("services.request.Create: %w", domain.ErrUserBlocked))
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"user is blocked"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: validBody(),
			email:       "donor@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.AnythingOfType("request.Actor"), mock.AnythingOfType("models.DummyRequest")).
					Return("", fmt.Errorf("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create donation request"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/donation-requests", bytes.NewReader(body))
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
