package models

import "time"

// TokenPair пара подписанных JWT, выдаваемая при входе и регистрации.
type TokenPair struct {
	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`
}

// TokenStatus явное состояние одноразового токена.
type TokenStatus string

// Состояния reset-токена.
const (
	TokenStatusActive  TokenStatus = "active"
	TokenStatusExpired TokenStatus = "expired"
)

// ResetToken одноразовый токен сброса пароля с абсолютным сроком действия.
// Хранится на записи пользователя и уничтожается при первом успешном сбросе.
type ResetToken struct {
	Value     string
	ExpiresAt time.Time
}

// Status возвращает состояние токена на момент now.
func (t ResetToken) Status(now time.Time) TokenStatus {
	if now.After(t.ExpiresAt) {
		return TokenStatusExpired
	}
	return TokenStatusActive
}
