package middlewarectx_test

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

	"github.com/bloodaid/bloodaid/internal/http/middlewarectx"
	"github.com/bloodaid/bloodaid/internal/lib/jwt"
)

// Mock for TokenValidator
type TokenValidatorMock struct {
	mock.Mock
}

func (m *TokenValidatorMock) ValidateToken(tokenStr string) (*jwt.CustomClaims, error) {
	args := m.Called(tokenStr)
	claims, _ := args.Get(0).(*jwt.CustomClaims)
	return claims, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	validatorMock := new(TokenValidatorMock)
	logger := newNoopLogger()

	handlerCalled := false

	// Test handler which checks context values
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		email := r.Context().Value(middlewarectx.User)
		name := r.Context().Value(middlewarectx.UserName)
		assert.Equal(t, "donor@example.com", email)
		assert.Equal(t, "Test Donor", name)
		w.WriteHeader(http.StatusOK)
	})

	middleware := middlewarectx.JWTMiddleware(validatorMock, logger)(nextHandler)

	tests := []struct {
		name           string
		authHeader     string
		mockClaims     *jwt.CustomClaims
		mockErr        error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "token validation error",
			authHeader:     "Bearer token",
			mockClaims:     nil,
			mockErr:        errors.New("token has invalid claims"),
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:       "valid token",
			authHeader: "Bearer validtoken",
			mockClaims: &jwt.CustomClaims{
				Email: "donor@example.com",
				Name:  "Test Donor",
				Role:  "donor",
			},
			mockErr:        nil,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false
			validatorMock.ExpectedCalls = nil // reset calls
			validatorMock.Calls = nil
			if tt.mockClaims != nil || tt.mockErr != nil {
				validatorMock.On("ValidateToken", strings.TrimPrefix(tt.authHeader, "Bearer ")).
					Return(tt.mockClaims, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()

			middleware.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			validatorMock.AssertExpectations(t)
		})
	}
}

// Mock for RoleResolver
type RoleResolverMock struct {
	mock.Mock
}

func (m *RoleResolverMock) ResolveRole(ctx context.Context, email string) (string, string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.String(1), args.Error(2)
}

func TestRoleMiddleware(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		ctxEmail       string
		mockRole       string
		mockStatus     string
		mockErr        error
		wantStatusCode int
		wantRole       string
	}{
		{
			name:           "role resolved from storage",
			ctxEmail:       "volunteer@example.com",
			mockRole:       "volunteer",
			mockStatus:     "active",
			wantStatusCode: http.StatusOK,
			wantRole:       "volunteer",
		},
		{
			name:           "missing email in context",
			ctxEmail:       "",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "resolver error closes access",
			ctxEmail:       "donor@example.com",
			mockErr:        errors.New("redis: connection refused"),
			wantStatusCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolverMock := new(RoleResolverMock)
			if tt.ctxEmail != "" {
				resolverMock.On("ResolveRole", mock.Anything, tt.ctxEmail).
					Return(tt.mockRole, tt.mockStatus, tt.mockErr).Once()
			}

			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				assert.Equal(t, tt.wantRole, r.Context().Value(middlewarectx.Role))
				w.WriteHeader(http.StatusOK)
			})

			middleware := middlewarectx.RoleMiddleware(resolverMock, logger)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.ctxEmail != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.User, tt.ctxEmail)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			middleware.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantStatusCode == http.StatusOK, handlerCalled)
			resolverMock.AssertExpectations(t)
		})
	}
}

func TestRequireRole(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		ctxRole        string
		allowed        []string
		wantStatusCode int
	}{
		{
			name:           "admin allowed",
			ctxRole:        "admin",
			allowed:        []string{"admin"},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "volunteer allowed alongside admin",
			ctxRole:        "volunteer",
			allowed:        []string{"admin", "volunteer"},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "donor forbidden",
			ctxRole:        "donor",
			allowed:        []string{"admin", "volunteer"},
			wantStatusCode: http.StatusForbidden,
		},
		{
			name:           "missing role",
			ctxRole:        "",
			allowed:        []string{"admin"},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			middleware := middlewarectx.RequireRole(logger, tt.allowed...)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.ctxRole != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.Role, tt.ctxRole)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			middleware.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
		})
	}
}
