// Package login реализует HTTP-обработчик входа пользователей.
//
// Выполняется декодирование JSON, валидация полей и делегирование операции
// сервису аутентификации. При успешном входе выставляются cookie сессии;
// предыдущий refresh-токен пользователя при этом перестает приниматься.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ecommerce-backend/internal/http/cookies"
	"github.com/magabrotheeeer/ecommerce-backend/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-backend/internal/models"
	authservice "github.com/magabrotheeeer/ecommerce-backend/internal/services/auth"
	"github.com/magabrotheeeer/ecommerce-backend/internal/storage/repository"
)

// Request — структура входных данных для авторизации.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, models.TokenPair, error)
}

// Handler обрабатывает HTTP-запросы на вход.
type Handler struct {
	log      *slog.Logger
	service  Service
	cookies  cookies.Writer
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, cookies cookies.Writer) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		cookies:  cookies,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Авторизация пользователя
// @Description Аутентифицирует пользователя по email и паролю, выставляет cookie сессии.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.Response "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверный пароль"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	user, pair, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			log.Error("user not found", slog.String("email", req.Email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, authservice.ErrInvalidCredentials):
			log.Error("invalid credentials", slog.String("email", req.Email))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("incorrect password"))
		default:
			log.Error("login failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to log in"))
		}
		return
	}

	h.cookies.SetSession(w, pair)

	log.Info("login success", slog.String("uid", user.UID))
	render.JSON(w, r, response.OKWithData("user logged in successfully", user))
}
