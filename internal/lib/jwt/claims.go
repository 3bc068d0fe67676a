// Package jwt реализует генерацию и парсинг пары JWT токенов сессии.
//
// Maker определяет интерфейс для создания и проверки access и refresh токенов.
// MakerImpl — конкретная реализация с отдельными секретными ключами и TTL
// для каждого типа токена.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	UserUID              string `json:"userId"` // Уникальный идентификатор пользователя
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// Maker описывает интерфейс для генерации и парсинга JWT токенов сессии.
//
// Access токен короткоживущий и подтверждает личность в рамках одного запроса,
// refresh токен живет дольше и служит для перевыпуска access токена.
type Maker interface {
	GenerateAccessToken(userUID string) (string, error)
	GenerateRefreshToken(userUID string) (string, error)
	ParseAccessToken(tokenStr string) (*CustomClaims, error)
	ParseRefreshToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker. Access и refresh токены подписываются
// разными секретными ключами, поэтому токен одного типа не проходит проверку
// как токен другого типа.
type MakerImpl struct {
	accessSecretKey  string        // Секретный ключ для подписи access токенов.
	refreshSecretKey string        // Секретный ключ для подписи refresh токенов.
	accessTTL        time.Duration // Время жизни access токена.
	refreshTTL       time.Duration // Время жизни refresh токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретных ключей и TTL.
func NewJWTMaker(accessSecretKey, refreshSecretKey string, accessTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		accessSecretKey:  accessSecretKey,
		refreshSecretKey: refreshSecretKey,
		accessTTL:        accessTTL,
		refreshTTL:       refreshTTL,
	}
}
