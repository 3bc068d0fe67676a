// Package logout реализует HTTP-обработчик выхода из сессии.
//
// Если cookie refreshToken присутствует, соответствующая запись в кэше
// отзывается. Выход всегда успешен для клиента: cookie очищаются даже
// если проверка токена не прошла.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ecommerce-backend/internal/http/cookies"
	"github.com/magabrotheeeer/ecommerce-backend/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, refreshToken string) error
}

// Handler обрабатывает HTTP-запросы на выход.
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
// @Summary Выход из сессии
// @Description Отзывает refresh-токен и очищает cookie сессии. Выход выполняется по принципу best-effort.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Сессия завершена"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if cookie, err := r.Cookie(cookies.RefreshTokenCookie); err == nil && cookie.Value != "" {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			// отзыв не удался, но клиентскую сессию все равно завершаем
			log.Error("failed to revoke refresh token", sl.Err(err))
		}
	}

	h.cookies.Clear(w)

	log.Info("user logged out")
	render.JSON(w, r, response.OK("logged out successfully"))
}
