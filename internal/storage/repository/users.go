package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/ecommerce-backend/internal/models"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникального ограничения.
const uniqueViolation = "23505"

// CreateUser сохраняет нового пользователя в базу данных и возвращает его UID.
// Если email уже занят, возвращает ErrUserExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (name, email, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по его email или ErrUserNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, password_hash, role,
			      reset_token, reset_token_expires_at, created_at
			  FROM users
			  WHERE email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUserByUID возвращает пользователя по его UID или ErrUserNotFound.
func (s *Storage) GetUserByUID(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, password_hash, role,
			      reset_token, reset_token_expires_at, created_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

// SetResetToken записывает reset-токен и срок его действия на запись пользователя,
// перезаписывая предыдущий токен, если он был.
func (s *Storage) SetResetToken(ctx context.Context, userUID, token string, expiresAt time.Time) error {
	const op = "storage.SetResetToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET reset_token = $1,
			      reset_token_expires_at = $2
			  WHERE uid = $3`
	res, err := s.DB.ExecContext(ctx, query, token, expiresAt, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

// GetUserByResetToken возвращает пользователя, у которого записан данный
// reset-токен с ещё не истекшим сроком действия. Истекший или неизвестный
// токен дает ErrUserNotFound.
func (s *Storage) GetUserByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	const op = "storage.GetUserByResetToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, password_hash, role,
			      reset_token, reset_token_expires_at, created_at
			  FROM users
			  WHERE reset_token = $1
			    AND reset_token_expires_at > $2`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, token, now), op)
}

// UpdatePassword заменяет хэш пароля и в том же запросе очищает поля
// reset-токена: токен одноразовый и уничтожается при первом успешном сбросе.
func (s *Storage) UpdatePassword(ctx context.Context, userUID, passwordHash string) error {
	const op = "storage.UpdatePassword"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = $1,
			      reset_token = NULL,
			      reset_token_expires_at = NULL
			  WHERE uid = $2`
	res, err := s.DB.ExecContext(ctx, query, passwordHash, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var resetToken sql.NullString
	var resetTokenExpiresAt sql.NullTime
	if err := row.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Role, &resetToken, &resetTokenExpiresAt, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resetToken.Valid && resetTokenExpiresAt.Valid {
		u.ResetToken = &models.ResetToken{
			Value:     resetToken.String,
			ExpiresAt: resetTokenExpiresAt.Time,
		}
	}
	return u, nil
}
