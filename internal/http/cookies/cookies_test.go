package cookies

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ecommerce-backend/internal/models"
)

func cookiesByName(rr *httptest.ResponseRecorder) map[string]*http.Cookie {
	result := make(map[string]*http.Cookie)
	for _, c := range rr.Result().Cookies() {
		result[c.Name] = c
	}
	return result
}

func TestSetSession(t *testing.T) {
	writer := New("development", 15*time.Minute, 7*24*time.Hour)
	rr := httptest.NewRecorder()

	writer.SetSession(rr, models.TokenPair{AccessToken: "access", RefreshToken: "refresh"})

	got := cookiesByName(rr)
	access := got[AccessTokenCookie]
	require.NotNil(t, access)
	assert.Equal(t, "access", access.Value)
	assert.Equal(t, int((15 * time.Minute).Seconds()), access.MaxAge)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, access.SameSite)
	assert.False(t, access.Secure)

	refresh := got[RefreshTokenCookie]
	require.NotNil(t, refresh)
	assert.Equal(t, "refresh", refresh.Value)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), refresh.MaxAge)
}

func TestSetSession_SecureOutsideDevelopment(t *testing.T) {
	writer := New("production", 15*time.Minute, 7*24*time.Hour)
	rr := httptest.NewRecorder()

	writer.SetSession(rr, models.TokenPair{AccessToken: "access", RefreshToken: "refresh"})

	for _, c := range rr.Result().Cookies() {
		assert.True(t, c.Secure)
	}
}

func TestSetAccess_DoesNotTouchRefresh(t *testing.T) {
	writer := New("development", 15*time.Minute, 7*24*time.Hour)
	rr := httptest.NewRecorder()

	writer.SetAccess(rr, "new-access")

	got := cookiesByName(rr)
	require.NotNil(t, got[AccessTokenCookie])
	assert.Equal(t, "new-access", got[AccessTokenCookie].Value)
	assert.Nil(t, got[RefreshTokenCookie])
}

func TestClear(t *testing.T) {
	writer := New("development", 15*time.Minute, 7*24*time.Hour)
	rr := httptest.NewRecorder()

	writer.Clear(rr)

	got := cookiesByName(rr)
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		c := got[name]
		require.NotNil(t, c)
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	}
}
