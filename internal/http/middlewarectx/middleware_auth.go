// Package middlewarectx содержит HTTP middleware для проверки access-токена
// из cookie и ограничения частоты запросов.
//
// AuthMiddleware проверяет подпись и срок действия access-токена, загружает
// пользователя из хранилища и добавляет его в контекст запроса.
// RequireAdmin пропускает дальше только пользователей с ролью admin.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ecommerce-backend/internal/http/cookies"
	"github.com/magabrotheeeer/ecommerce-backend/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-backend/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User — ключ для модели пользователя в контексте
	User Key = "user"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
)

// TokenParser описывает интерфейс проверки access-токена.
type TokenParser interface {
	ParseAccessToken(tokenStr string) (*jwt.CustomClaims, error)
}

// UserProvider описывает интерфейс загрузки пользователя по UID.
type UserProvider interface {
	GetUserByUID(ctx context.Context, userUID string) (*models.User, error)
}

// AuthMiddleware возвращает HTTP middleware, который проверяет access-токен
// из cookie accessToken.
//
// Если токен валиден, добавляет пользователя и его роль в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func AuthMiddleware(parser TokenParser, users UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(cookies.AccessTokenCookie)
			if err != nil || cookie.Value == "" {
				log.Error("missing access token cookie")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("no access token provided"))
				return
			}

			claims, err := parser.ParseAccessToken(cookie.Value)
			if err != nil {
				log.Error("invalid or expired access token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired access token"))
				return
			}

			user, err := users.GetUserByUID(r.Context(), claims.UserUID)
			if err != nil {
				log.Error("failed to load user for access token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired access token"))
				return
			}

			ctx := context.WithValue(r.Context(), User, user)
			ctx = context.WithValue(ctx, Role, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin возвращает HTTP middleware, который пропускает запрос дальше
// только если в контексте лежит роль admin.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAdmin"

			role, ok := r.Context().Value(Role).(string)
			if !ok || role != models.RoleAdmin {
				log.Error("access denied: admin role required",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
