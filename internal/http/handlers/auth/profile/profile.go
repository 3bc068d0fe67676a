// Package profile реализует HTTP-обработчик профиля текущего пользователя.
//
// Личность уже проверена и положена в контекст middleware аутентификации,
// обработчику остается только вернуть публичные поля пользователя.
package profile

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ecommerce-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ecommerce-backend/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-backend/internal/models"
)

// Handler обрабатывает HTTP-запросы профиля.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает публичные поля пользователя из проверенного access-токена.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Профиль пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := r.Context().Value(middlewarectx.User).(*models.User)
	if !ok || user == nil {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	render.JSON(w, r, response.OKWithData("profile fetched successfully", user))
}
