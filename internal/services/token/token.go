// Package token содержит сервис жизненного цикла токенов сессии.
//
// Сервис выпускает пару access/refresh токенов, хранит действующий
// refresh-токен пользователя во внешнем кэше и сверяет предъявленный
// токен с сохраненным при перевыпуске access-токена. Кэш — единственный
// источник истины: подпись может быть валидной, но после logout или
// повторного входа токен больше не принимается.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/ecommerce-backend/internal/models"
)

// ErrInvalidToken предъявленный refresh-токен просрочен, отозван
// или не совпадает с сохраненным в кэше.
var ErrInvalidToken = errors.New("invalid token")

// Store описывает контракт кэша refresh-токенов.
type Store interface {
	SetRefreshToken(ctx context.Context, userUID, token string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, userUID string) (string, bool, error)
	DeleteRefreshToken(ctx context.Context, userUID string) error
}

// Service выпускает, проверяет и отзывает токены сессии.
type Service struct {
	maker      jwt.Maker
	store      Store
	refreshTTL time.Duration
}

// New создает новый Service. refreshTTL задает и срок жизни refresh-токена
// в кэше, и срок его подписи.
func New(maker jwt.Maker, store Store, refreshTTL time.Duration) *Service {
	return &Service{
		maker:      maker,
		store:      store,
		refreshTTL: refreshTTL,
	}
}

// Issue выпускает пару подписанных токенов для пользователя.
func (s *Service) Issue(userUID string) (models.TokenPair, error) {
	const op = "token.Issue"
	access, err := s.maker.GenerateAccessToken(userUID)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}
	refresh, err := s.maker.GenerateRefreshToken(userUID)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}
	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// StoreRefresh сохраняет refresh-токен в кэше под ключом пользователя,
// перезаписывая предыдущий. В каждый момент времени доверенным считается
// ровно один refresh-токен на пользователя.
func (s *Service) StoreRefresh(ctx context.Context, userUID, refreshToken string) error {
	const op = "token.StoreRefresh"
	if err := s.store.SetRefreshToken(ctx, userUID, refreshToken, s.refreshTTL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// VerifyRefresh проверяет подпись и срок действия refresh-токена
// и возвращает UID пользователя. Неверный токен дает ErrInvalidToken.
func (s *Service) VerifyRefresh(refreshToken string) (string, error) {
	const op = "token.VerifyRefresh"
	claims, err := s.maker.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	return claims.UserUID, nil
}

// RotateAccess перевыпускает access-токен по предъявленному refresh-токену.
// Токен должен пройти проверку подписи и дословно совпасть с сохраненным
// в кэше значением, иначе возвращается ErrInvalidToken. Сам refresh-токен
// при этом не перевыпускается.
func (s *Service) RotateAccess(ctx context.Context, refreshToken string) (string, string, error) {
	const op = "token.RotateAccess"

	userUID, err := s.VerifyRefresh(refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	stored, found, err := s.store.GetRefreshToken(ctx, userUID)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	if !found || stored != refreshToken {
		return "", "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	access, err := s.maker.GenerateAccessToken(userUID)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	return access, userUID, nil
}

// Revoke удаляет refresh-токен пользователя из кэша. Идемпотентна.
func (s *Service) Revoke(ctx context.Context, userUID string) error {
	const op = "token.Revoke"
	if err := s.store.DeleteRefreshToken(ctx, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
