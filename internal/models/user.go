// Package models содержит доменные модели интернет-магазина:
// пользователей, токены сессии и агрегированные данные о продажах.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей.
const (
	RoleUser  = "user"  // обычный покупатель
	RoleAdmin = "admin" // администратор магазина
)

// User представляет зарегистрированного пользователя магазина.
// PasswordHash и данные reset-токена никогда не сериализуются в ответы API.
type User struct {
	UID          string      `json:"uid"`   // Уникальный идентификатор пользователя
	Name         string      `json:"name"`  // Отображаемое имя
	Email        string      `json:"email"` // Электронная почта (уникальная)
	PasswordHash string      `json:"-"`     // Хэш пароля пользователя
	Role         string      `json:"role"`  // Роль пользователя, admin или user
	ResetToken   *ResetToken `json:"-"`     // Активный токен сброса пароля, если есть
	CreatedAt    time.Time   `json:"created_at"`
}
