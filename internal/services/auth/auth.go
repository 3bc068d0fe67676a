// Package auth содержит логику бизнес-уровня для работы с пользователями
// и жизненным циклом сессии: регистрация, вход, выход, перевыпуск
// access-токена и сброс пароля.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/password"
	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-backend/internal/models"
	"github.com/magabrotheeeer/ecommerce-backend/internal/storage/repository"
)

// Ожидаемые ошибки уровня сервиса.
var (
	// ErrInvalidCredentials пароль не подошел к найденной учетной записи.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidResetToken reset-токен неизвестен, истек или уже использован.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// resetTokenBytes длина случайного reset-токена до hex-кодирования.
const resetTokenBytes = 20

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUID(ctx context.Context, userUID string) (*models.User, error)
	SetResetToken(ctx context.Context, userUID, resetToken string, expiresAt time.Time) error
	GetUserByResetToken(ctx context.Context, resetToken string, now time.Time) (*models.User, error)
	UpdatePassword(ctx context.Context, userUID, passwordHash string) error
}

// TokenService описывает контракт сервиса токенов сессии.
type TokenService interface {
	Issue(userUID string) (models.TokenPair, error)
	StoreRefresh(ctx context.Context, userUID, refreshToken string) error
	VerifyRefresh(refreshToken string) (string, error)
	RotateAccess(ctx context.Context, refreshToken string) (string, string, error)
	Revoke(ctx context.Context, userUID string) error
}

// Sender описывает контракт отправки транзакционных писем.
type Sender interface {
	SendPasswordResetEmail(email, resetURL string) error
	SendResetSuccessEmail(email string) error
}

// Service отвечает за регистрацию, авторизацию и восстановление пароля.
type Service struct {
	users         UserRepository
	tokens        TokenService
	sender        Sender
	clientURL     string
	resetTokenTTL time.Duration
	log           *slog.Logger
}

// New создает новый экземпляр Service. clientURL используется для построения
// ссылок сброса пароля, resetTokenTTL задает срок жизни reset-токена.
func New(users UserRepository, tokens TokenService, sender Sender,
	clientURL string, resetTokenTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		users:         users,
		tokens:        tokens,
		sender:        sender,
		clientURL:     clientURL,
		resetTokenTTL: resetTokenTTL,
		log:           log,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной
// ролью user, затем выпускает и сохраняет пару токенов. Занятый email дает
// repository.ErrUserExists до какой-либо работы с токенами.
func (s *Service) Register(ctx context.Context, name, email, rawPassword string) (*models.User, models.TokenPair, error) {
	const op = "auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleUser, // дефолтная роль при регистрации
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}
	user.UID = uid

	pair, err := s.issueSession(ctx, uid)
	if err != nil {
		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}
	return &user, pair, nil
}

// Login проверяет пароль пользователя, выпускает пару токенов и сохраняет
// refresh-токен в кэше. Прежняя сессия пользователя при этом отзывается:
// доверенным остается только новый refresh-токен.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*models.User, models.TokenPair, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	pair, err := s.issueSession(ctx, user.UID)
	if err != nil {
		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, pair, nil
}

// Logout отзывает refresh-токен, соответствующий предъявленному значению.
// Вызывающая сторона трактует ошибку как некритичную: клиентские cookie
// очищаются в любом случае.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	const op = "auth.Logout"

	userUID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.tokens.Revoke(ctx, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Refresh перевыпускает access-токен по действующему refresh-токену.
// Refresh-токен не ротируется.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	const op = "auth.Refresh"

	access, _, err := s.tokens.RotateAccess(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return access, nil
}

// ForgotPassword генерирует случайный reset-токен, сохраняет его на записи
// пользователя со сроком действия resetTokenTTL и отправляет письмо со
// ссылкой на сброс. Токен наружу не возвращается.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	const op = "auth.ForgotPassword"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resetToken, err := randomToken()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	expiresAt := time.Now().UTC().Add(s.resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.UID, resetToken, expiresAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.clientURL, resetToken)
	if err := s.sender.SendPasswordResetEmail(user.Email, resetURL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ResetPassword меняет пароль пользователя по действующему reset-токену.
// Токен одноразовый: поля сброса очищаются тем же запросом, что меняет
// пароль, повторное предъявление дает ErrInvalidResetToken.
func (s *Service) ResetPassword(ctx context.Context, resetToken, rawPassword string) error {
	const op = "auth.ResetPassword"

	user, err := s.users.GetUserByResetToken(ctx, resetToken, time.Now().UTC())
	if err != nil {
		// недействителен только неизвестный или истекший токен,
		// остальные ошибки хранилища остаются внутренними
		if errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", op, ErrInvalidResetToken)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if user.ResetToken != nil && user.ResetToken.Status(time.Now().UTC()) != models.TokenStatusActive {
		return fmt.Errorf("%s: %w", op, ErrInvalidResetToken)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdatePassword(ctx, user.UID, hashed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.sender.SendResetSuccessEmail(user.Email); err != nil {
		// пароль уже сменен, падение уведомления не откатывает операцию
		s.log.Error("failed to send reset success email", sl.Err(err))
	}
	return nil
}

// Profile возвращает пользователя по UID из проверенного access-токена.
func (s *Service) Profile(ctx context.Context, userUID string) (*models.User, error) {
	const op = "auth.Profile"

	user, err := s.users.GetUserByUID(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (s *Service) issueSession(ctx context.Context, userUID string) (models.TokenPair, error) {
	pair, err := s.tokens.Issue(userUID)
	if err != nil {
		return models.TokenPair{}, err
	}
	if err := s.tokens.StoreRefresh(ctx, userUID, pair.RefreshToken); err != nil {
		return models.TokenPair{}, err
	}
	return pair, nil
}

func randomToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
