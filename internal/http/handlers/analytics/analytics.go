// Package analytics реализует HTTP-обработчик отчета о продажах.
//
// Возвращает сводные показатели магазина и ежедневный ряд продаж
// за последние семь дней, включая дни без заказов.
package analytics

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ecommerce-backend/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-backend/internal/models"
)

// dailyWindow окно ежедневного отчета: последние семь календарных дней.
const dailyWindow = 7

// Service описывает интерфейс бизнес-логики отчетов о продажах.
type Service interface {
	Summary(ctx context.Context) (*models.SalesSummary, error)
	DailySeries(ctx context.Context, start, end time.Time) ([]models.DailySales, error)
}

// Handler обрабатывает HTTP-запросы отчета о продажах.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отчет о продажах
// @Description Возвращает сводные показатели магазина и ежедневные продажи за последнюю неделю.
// @Tags Analytics
// @Produce  json
// @Success 200 {object} response.Response "Данные отчета"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль admin"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /analytics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	summary, err := h.service.Summary(r.Context())
	if err != nil {
		log.Error("failed to collect sales summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get analytics data"))
		return
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -(dailyWindow - 1))
	daily, err := h.service.DailySeries(r.Context(), start, end)
	if err != nil {
		log.Error("failed to collect daily sales", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get analytics data"))
		return
	}

	log.Info("analytics collected", slog.Int("days", len(daily)))
	render.JSON(w, r, response.OKWithData("analytics data", map[string]any{
		"summary":     summary,
		"daily_sales": daily,
	}))
}
