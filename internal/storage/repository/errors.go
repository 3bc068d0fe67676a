package repository

import "errors"

// Ожидаемые ошибки уровня хранилища. Обработчики превращают их
// в клиентские ответы 4xx, все остальные ошибки считаются внутренними.
var (
	// ErrUserExists пользователь с таким email уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
)
