package refresh

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/ecommerce-backend/internal/http/cookies"
	"github.com/magabrotheeeer/ecommerce-backend/internal/services/token"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRefreshHandler(t *testing.T) {
	tests := []struct {
		name           string
		cookieValue    string
		hasCookie      bool
		mockSetup      func(*MockService)
		expectedStatus int
		expectedBody   string
		expectAccess   bool
	}{
		{
			name:        "success",
			cookieValue: "valid-refresh-token",
			hasCookie:   true,
			mockSetup: func(m *MockService) {
				m.On("Refresh", mock.Anything, "valid-refresh-token").Return("new-access-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "token refreshed successfully",
			expectAccess:   true,
		},
		{
			name:           "missing cookie",
			hasCookie:      false,
			mockSetup:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "no refresh token provided",
		},
		{
			name:           "empty cookie value",
			cookieValue:    "",
			hasCookie:      true,
			mockSetup:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "no refresh token provided",
		},
		{
			name:        "rejected token",
			cookieValue: "revoked-refresh-token",
			hasCookie:   true,
			mockSetup: func(m *MockService) {
				m.On("Refresh", mock.Anything, "revoked-refresh-token").Return("", token.ErrInvalidToken)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid refresh token",
		},
		{
			name:        "internal error",
			cookieValue: "valid-refresh-token",
			hasCookie:   true,
			mockSetup: func(m *MockService) {
				m.On("Refresh", mock.Anything, "valid-refresh-token").Return("", assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "failed to refresh token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.mockSetup(service)

			handler := New(discardLogger(), service, cookies.New("development", 15*time.Minute, 7*24*time.Hour))

			req := httptest.NewRequest(http.MethodPost, "/refresh-token", nil)
			if tt.hasCookie {
				req.AddCookie(&http.Cookie{Name: cookies.RefreshTokenCookie, Value: tt.cookieValue})
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)

			var accessValue string
			var refreshSet bool
			for _, c := range rr.Result().Cookies() {
				switch c.Name {
				case cookies.AccessTokenCookie:
					accessValue = c.Value
				case cookies.RefreshTokenCookie:
					refreshSet = true
				}
			}
			if tt.expectAccess {
				assert.Equal(t, "new-access-token", accessValue)
				// refresh-токен не ротируется, его cookie не трогается
				assert.False(t, refreshSet)
			} else {
				assert.Empty(t, accessValue)
			}
			service.AssertExpectations(t)
		})
	}
}
