// Package storage определяет ошибки уровня хранилища, общие для всех реализаций.
// Конкретные репозитории транслируют ошибки драйвера в эти значения,
// чтобы бизнес-логика и обработчики не зависели от деталей базы данных.
package storage

import "errors"

var (
	// ErrUserNotFound пользователь с указанным uid или email не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound статья с указанным uid не найдена.
	ErrPostNotFound = errors.New("post not found")
	// ErrEmailTaken пользователь с таким email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already taken")
	// ErrUsernameTaken пользователь с таким username уже зарегистрирован.
	ErrUsernameTaken = errors.New("username already taken")
)
