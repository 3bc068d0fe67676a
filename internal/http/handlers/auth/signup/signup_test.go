package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ecommerce-backend/internal/http/cookies"
	"github.com/magabrotheeeer/ecommerce-backend/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-backend/internal/models"
	"github.com/magabrotheeeer/ecommerce-backend/internal/storage/repository"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, name, email, password string) (*models.User, models.TokenPair, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, models.TokenPair{}, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(models.TokenPair), args.Error(2)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSignupHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(*MockService)
		expectedStatus int
		expectedBody   string
		expectCookies  bool
	}{
		{
			name: "success",
			body: `{"name": "Alice", "email": "alice@example.com", "password": "password123"}`,
			mockSetup: func(m *MockService) {
				m.On("Register", mock.Anything, "Alice", "alice@example.com", "password123").
					Return(&models.User{UID: "uid-1", Name: "Alice", Email: "alice@example.com", Role: models.RoleUser},
						models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   "user registered successfully",
			expectCookies:  true,
		},
		{
			name:           "invalid json",
			body:           `{"name": }`,
			mockSetup:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "missing email",
			body:           `{"name": "Alice", "password": "password123"}`,
			mockSetup:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "email",
		},
		{
			name:           "short password",
			body:           `{"name": "Alice", "email": "alice@example.com", "password": "123"}`,
			mockSetup:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "password",
		},
		{
			name: "email already taken",
			body: `{"name": "Alice", "email": "alice@example.com", "password": "password123"}`,
			mockSetup: func(m *MockService) {
				m.On("Register", mock.Anything, "Alice", "alice@example.com", "password123").
					Return(nil, models.TokenPair{}, repository.ErrUserExists)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "user already exists",
		},
		{
			name: "internal error",
			body: `{"name": "Alice", "email": "alice@example.com", "password": "password123"}`,
			mockSetup: func(m *MockService) {
				m.On("Register", mock.Anything, "Alice", "alice@example.com", "password123").
					Return(nil, models.TokenPair{}, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "failed to register user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.mockSetup(service)

			handler := New(discardLogger(), service, cookies.New("development", 15*time.Minute, 7*24*time.Hour))

			req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)

			if tt.expectCookies {
				names := make(map[string]string)
				for _, c := range rr.Result().Cookies() {
					names[c.Name] = c.Value
				}
				assert.Equal(t, "access", names[cookies.AccessTokenCookie])
				assert.Equal(t, "refresh", names[cookies.RefreshTokenCookie])
			}
			service.AssertExpectations(t)
		})
	}
}

func TestSignupHandler_PasswordHashNotExposed(t *testing.T) {
	service := new(MockService)
	service.On("Register", mock.Anything, "Alice", "alice@example.com", "password123").
		Return(&models.User{UID: "uid-1", Name: "Alice", Email: "alice@example.com",
			PasswordHash: "$2a$10$secret", Role: models.RoleUser},
			models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil)

	handler := New(discardLogger(), service, cookies.New("development", 15*time.Minute, 7*24*time.Hour))

	body := `{"name": "Alice", "email": "alice@example.com", "password": "password123"}`
	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "$2a$10$secret")

	var resp response.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}
