// Package analytics содержит логику бизнес-уровня для отчетов о продажах:
// сводные показатели магазина и ежедневный ряд продаж без пропусков дат.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/daterange"
	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-backend/internal/models"
)

// summaryCacheKey ключ кэша для сводного отчета.
const summaryCacheKey = "analytics:summary"

// summaryCacheTTL время жизни сводного отчета в кэше.
const summaryCacheTTL = 10 * time.Minute

// StatsRepository описывает контракт агрегирующих запросов к базе данных.
type StatsRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountProducts(ctx context.Context) (int, error)
	SummarizeOrders(ctx context.Context) (int, float64, error)
	DailySales(ctx context.Context, start, end time.Time) ([]models.DailySales, error)
}

// SummaryCache описывает контракт кэша отчетных данных.
type SummaryCache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// Service считает отчеты о продажах поверх хранилища заказов.
type Service struct {
	stats StatsRepository
	cache SummaryCache
	log   *slog.Logger
}

// New создает новый Service.
func New(stats StatsRepository, cache SummaryCache, log *slog.Logger) *Service {
	return &Service{
		stats: stats,
		cache: cache,
		log:   log,
	}
}

// Summary возвращает сводные показатели магазина: количество пользователей,
// товаров и заказов и суммарную выручку за все время. Результат недолго
// хранится в кэше, падение кэша не мешает посчитать отчет заново.
func (s *Service) Summary(ctx context.Context) (*models.SalesSummary, error) {
	const op = "analytics.Summary"

	var cached models.SalesSummary
	found, err := s.cache.Get(summaryCacheKey, &cached)
	if err != nil {
		s.log.Error("failed to read summary from cache", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	users, err := s.stats.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	products, err := s.stats.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sales, revenue, err := s.stats.SummarizeOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary := &models.SalesSummary{
		Users:    users,
		Products: products,
		Sales:    sales,
		Revenue:  revenue,
	}
	if err := s.cache.Set(summaryCacheKey, summary, summaryCacheTTL); err != nil {
		s.log.Error("failed to cache summary", sl.Err(err))
	}
	return summary, nil
}

// DailySeries возвращает продажи по календарным дням в окне [start, end]
// включительно, по возрастанию даты. Дни без заказов присутствуют в
// результате с нулевыми продажами и выручкой: агрегация из базы данных
// дозаполняется по сгенерированной непрерывной последовательности дат.
func (s *Service) DailySeries(ctx context.Context, start, end time.Time) ([]models.DailySales, error) {
	const op = "analytics.DailySeries"

	rows, err := s.stats.DailySales(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byDate := make(map[string]models.DailySales, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row
	}

	days := daterange.Days(start, end)
	result := make([]models.DailySales, 0, len(days))
	for _, day := range days {
		if row, ok := byDate[day]; ok {
			result = append(result, row)
			continue
		}
		result = append(result, models.DailySales{Date: day})
	}
	return result, nil
}
