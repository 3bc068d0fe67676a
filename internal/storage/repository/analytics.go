package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/ecommerce-backend/internal/models"
)

// CountUsers возвращает общее количество зарегистрированных пользователей.
func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	const op = "storage.CountUsers"
	return s.countRows(ctx, op, `SELECT COUNT(*) FROM users`)
}

// CountProducts возвращает общее количество товаров в каталоге.
func (s *Storage) CountProducts(ctx context.Context) (int, error) {
	const op = "storage.CountProducts"
	return s.countRows(ctx, op, `SELECT COUNT(*) FROM products`)
}

// SummarizeOrders возвращает количество заказов и суммарную выручку
// за всё время работы магазина.
func (s *Storage) SummarizeOrders(ctx context.Context) (int, float64, error) {
	const op = "storage.SummarizeOrders"
	select {
	case <-ctx.Done():
		return 0, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
			  FROM orders`
	var count int
	var revenue float64
	if err := s.DB.QueryRowContext(ctx, query).Scan(&count, &revenue); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, revenue, nil
}

// DailySales возвращает продажи, сгруппированные по календарным дням,
// внутри окна [start, end]. Дни без заказов в выборку не попадают,
// их дозаполняет сервис отчетов.
func (s *Storage) DailySales(ctx context.Context, start, end time.Time) ([]models.DailySales, error) {
	const op = "storage.DailySales"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	// дни считаются по UTC независимо от часового пояса сессии
	query := `SELECT TO_CHAR((created_at AT TIME ZONE 'UTC')::date, 'YYYY-MM-DD') AS day,
			      COUNT(*),
			      COALESCE(SUM(total_amount), 0)
			  FROM orders
			  WHERE created_at >= $1 AND created_at <= $2
			  GROUP BY day
			  ORDER BY day`
	rows, err := s.DB.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.DailySales
	for rows.Next() {
		var item models.DailySales
		if err = rows.Scan(&item.Date, &item.Sales, &item.Revenue); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (s *Storage) countRows(ctx context.Context, op, query string) (int, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
