// Package refresh реализует HTTP-обработчик перевыпуска access-токена.
//
// Предъявленный refresh-токен должен пройти проверку подписи и совпасть
// со значением, сохраненным в кэше для этого пользователя. Обновляется
// только cookie access-токена, refresh-токен не ротируется.
package refresh

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ecommerce-backend/internal/http/cookies"
	"github.com/magabrotheeeer/ecommerce-backend/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-backend/internal/services/token"
)

// Service описывает интерфейс перевыпуска access-токена.
type Service interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// Handler обрабатывает HTTP-запросы на перевыпуск access-токена.
type Handler struct {
	log     *slog.Logger
	service Service
	cookies cookies.Writer
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, cookies cookies.Writer) *Handler {
	return &Handler{
		log:     log,
		service: service,
		cookies: cookies,
	}
}

// ServeHTTP godoc
// @Summary Перевыпуск access-токена
// @Description Выпускает новый access-токен по действующему refresh-токену из cookie.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Токен обновлен"
// @Failure 401 {object} response.ErrorResponse "Refresh-токен отсутствует, недействителен или отозван"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /refresh-token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cookie, err := r.Cookie(cookies.RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		log.Error("missing refresh token cookie")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("no refresh token provided"))
		return
	}

	access, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, token.ErrInvalidToken) {
			log.Error("refresh token rejected", sl.Err(err))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid refresh token"))
			return
		}
		log.Error("failed to refresh token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to refresh token"))
		return
	}

	h.cookies.SetAccess(w, access)

	log.Info("access token refreshed")
	render.JSON(w, r, response.OK("token refreshed successfully"))
}
