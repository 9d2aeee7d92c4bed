package services

import "errors"

var (
	// ErrInvalidCredentials неверная пара email/пароль. Ошибка одинакова
	// для несуществующего email и неверного пароля, чтобы не раскрывать,
	// зарегистрирован ли адрес.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden действие запрещено: пользователь не автор и не администратор.
	ErrForbidden = errors.New("action is not allowed")
	// ErrValidation входные данные не прошли проверку.
	ErrValidation = errors.New("validation failed")
)
