// Package cookies содержит запись и очистку cookie сессии.
// Обе cookie помечаются HttpOnly и SameSite=Strict; флаг Secure
// выставляется во всех окружениях кроме development.
package cookies

import (
	"net/http"
	"time"

	"github.com/magabrotheeeer/ecommerce-backend/internal/models"
)

// Имена cookie сессии.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// Writer выставляет cookie сессии с временем жизни, совпадающим
// со сроком действия соответствующего токена.
type Writer struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// New создает Writer. env сравнивается с "development": в остальных
// окружениях cookie передаются только по HTTPS.
func New(env string, accessTTL, refreshTTL time.Duration) Writer {
	return Writer{
		secure:     env != "development",
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// SetSession выставляет обе cookie сессии.
func (c Writer) SetSession(w http.ResponseWriter, pair models.TokenPair) {
	c.set(w, AccessTokenCookie, pair.AccessToken, c.accessTTL)
	c.set(w, RefreshTokenCookie, pair.RefreshToken, c.refreshTTL)
}

// SetAccess выставляет только cookie access-токена. Используется при
// перевыпуске access-токена: refresh-токен при этом не меняется.
func (c Writer) SetAccess(w http.ResponseWriter, accessToken string) {
	c.set(w, AccessTokenCookie, accessToken, c.accessTTL)
}

// Clear сбрасывает обе cookie сессии.
func (c Writer) Clear(w http.ResponseWriter) {
	c.expire(w, AccessTokenCookie)
	c.expire(w, RefreshTokenCookie)
}

func (c Writer) set(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c Writer) expire(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
