// Package resetpassword реализует HTTP-обработчик смены пароля по reset-токену.
//
// Токен берется из параметра пути и принимается только пока не истек.
// Токен одноразовый: после успешной смены пароля повторное использование
// отклоняется. Об успешной смене пользователю отправляется письмо.
package resetpassword

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ecommerce-backend/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/sl"
	authservice "github.com/magabrotheeeer/ecommerce-backend/internal/services/auth"
)

// Request — структура входных данных для смены пароля.
type Request struct {
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики смены пароля.
type Service interface {
	ResetPassword(ctx context.Context, resetToken, password string) error
}

// Handler обрабатывает HTTP-запросы на смену пароля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Смена пароля по reset-токену
// @Description Меняет пароль пользователя по одноразовому reset-токену из пути.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param token path string true "Reset-токен"
// @Param request body Request true "Новый пароль"
// @Success 200 {object} response.Response "Пароль изменен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или недействительный токен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /reset-password/{token} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resetpassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	resetToken := chi.URLParam(r, "token")
	if resetToken == "" {
		log.Error("missing reset token in path")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid or expired reset token"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.ResetPassword(r.Context(), resetToken, req.Password); err != nil {
		if errors.Is(err, authservice.ErrInvalidResetToken) {
			log.Error("reset token rejected")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid or expired reset token"))
			return
		}
		log.Error("failed to reset password", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to reset password"))
		return
	}

	log.Info("password reset successful")
	render.JSON(w, r, response.OK("password reset successful"))
}
