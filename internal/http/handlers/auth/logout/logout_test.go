package logout

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
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ecommerce-backend/internal/http/cookies"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(service *MockService) *Handler {
	return New(discardLogger(), service, cookies.New("development", 15*time.Minute, 7*24*time.Hour))
}

func assertSessionCleared(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	cleared := make(map[string]bool)
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 && c.Value == "" {
			cleared[c.Name] = true
		}
	}
	assert.True(t, cleared[cookies.AccessTokenCookie])
	assert.True(t, cleared[cookies.RefreshTokenCookie])
}

func TestLogoutHandler_RevokesTokenAndClearsCookies(t *testing.T) {
	service := new(MockService)
	service.On("Logout", mock.Anything, "refresh-token-value").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: cookies.RefreshTokenCookie, Value: "refresh-token-value"})
	rr := httptest.NewRecorder()

	newTestHandler(service).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "logged out successfully")
	assertSessionCleared(t, rr)
	service.AssertExpectations(t)
}

func TestLogoutHandler_NoCookie(t *testing.T) {
	service := new(MockService)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rr := httptest.NewRecorder()

	newTestHandler(service).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assertSessionCleared(t, rr)
	service.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}

func TestLogoutHandler_RevokeFailureStillSucceeds(t *testing.T) {
	service := new(MockService)
	service.On("Logout", mock.Anything, "stale-token").Return(assert.AnError)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: cookies.RefreshTokenCookie, Value: "stale-token"})
	rr := httptest.NewRecorder()

	newTestHandler(service).ServeHTTP(rr, req)

	// клиентская сессия завершается даже при неудачном отзыве
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "logged out successfully")
	assertSessionCleared(t, rr)
}
