// Package cache реализует клиент redis, используемый как хранилище
// refresh-токенов и как кэш для редко меняющихся отчетных данных.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/ecommerce-backend/internal/config"
)

// refreshTokenKeyPrefix префикс ключа, под которым хранится единственный
// доверенный refresh-токен пользователя. Формат ключа: refresh_token:<userUID>.
const refreshTokenKeyPrefix = "refresh_token:"

// Cache обертка над клиентом redis.
type Cache struct {
	Db *redis.Client
}

// InitServer подключается к redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

// SetRefreshToken записывает refresh-токен пользователя, перезаписывая
// предыдущее значение. Повторный вход с другого устройства таким образом
// отзывает прежнюю сессию.
func (c *Cache) SetRefreshToken(ctx context.Context, userUID, token string, ttl time.Duration) error {
	const op = "cache.SetRefreshToken"
	if err := c.Db.Set(ctx, refreshTokenKey(userUID), token, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetRefreshToken возвращает сохраненный refresh-токен пользователя.
// Второе возвращаемое значение false, если записи нет.
func (c *Cache) GetRefreshToken(ctx context.Context, userUID string) (string, bool, error) {
	const op = "cache.GetRefreshToken"
	val, err := c.Db.Get(ctx, refreshTokenKey(userUID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

// DeleteRefreshToken удаляет refresh-токен пользователя.
// Операция идемпотентна: отсутствие записи не является ошибкой.
func (c *Cache) DeleteRefreshToken(ctx context.Context, userUID string) error {
	const op = "cache.DeleteRefreshToken"
	if err := c.Db.Del(ctx, refreshTokenKey(userUID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func refreshTokenKey(userUID string) string {
	return refreshTokenKeyPrefix + userUID
}

// Get читает значение по ключу и декодирует его из JSON в result.
// Возвращает false, если ключа нет.
func (c *Cache) Get(key string, result any) (bool, error) {
	const op = "cache.Get"
	val, err := c.Db.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	err = json.Unmarshal([]byte(val), result)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сериализует значение в JSON и записывает его с заданным TTL.
func (c *Cache) Set(key string, value any, expiration time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Db.Set(context.Background(), key, jsonData, expiration).Err()
}

// Invalidate удаляет значение по ключу.
func (c *Cache) Invalidate(key string) error {
	return c.Db.Del(context.Background(), key).Err()
}
