// Package forgotpassword реализует HTTP-обработчик запроса на сброс пароля.
//
// Для известного email генерируется одноразовый reset-токен со сроком
// действия один час и отправляется письмо со ссылкой на сброс. Токен
// в теле ответа не возвращается.
package forgotpassword

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ecommerce-backend/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-backend/internal/storage/repository"
)

// Request — структура входных данных для запроса сброса пароля.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Service описывает интерфейс бизнес-логики запроса сброса пароля.
type Service interface {
	ForgotPassword(ctx context.Context, email string) error
}

// Handler обрабатывает HTTP-запросы на сброс пароля.
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
// @Summary Запрос на сброс пароля
// @Description Генерирует reset-токен и отправляет письмо со ссылкой для сброса пароля.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Email пользователя"
// @Success 200 {object} response.Response "Письмо отправлено"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /forgot-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.forgotpassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Error("user not found", slog.String("email", req.Email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to process password reset request", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to send reset password email"))
		return
	}

	log.Info("reset password email sent")
	render.JSON(w, r, response.OK("reset password email sent successfully"))
}
