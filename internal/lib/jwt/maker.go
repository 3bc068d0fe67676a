package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GenerateAccessToken создает короткоживущий access токен с claim userId,
// подписанный access-секретом.
func (j *MakerImpl) GenerateAccessToken(userUID string) (string, error) {
	return j.generate(userUID, j.accessSecretKey, j.accessTTL)
}

// GenerateRefreshToken создает refresh токен с claim userId,
// подписанный refresh-секретом.
func (j *MakerImpl) GenerateRefreshToken(userUID string) (string, error) {
	return j.generate(userUID, j.refreshSecretKey, j.refreshTTL)
}

// ParseAccessToken парсит access токен, проверяет его подпись и срок действия,
// возвращает CustomClaims с данными, если токен корректен.
func (j *MakerImpl) ParseAccessToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseAccessToken"
	return j.parse(op, tokenStr, j.accessSecretKey)
}

// ParseRefreshToken парсит refresh токен, проверяет его подпись и срок действия.
func (j *MakerImpl) ParseRefreshToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseRefreshToken"
	return j.parse(op, tokenStr, j.refreshSecretKey)
}

func (j *MakerImpl) generate(userUID, secretKey string, ttl time.Duration) (string, error) {
	claims := CustomClaims{
		UserUID: userUID,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti делает токены уникальными даже при выпуске в одну секунду
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func (j *MakerImpl) parse(op, tokenStr, secretKey string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
