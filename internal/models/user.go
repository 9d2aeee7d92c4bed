// Package models содержит доменные модели блога: пользователей и статьи.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    `json:"id"`       // Уникальный идентификатор пользователя
	Username     string    `json:"username"` // Имя пользователя (уникальное)
	Email        string    `json:"email"`    // Электронная почта, хранится в нижнем регистре
	PasswordHash string    `json:"-"`        // Хэш пароля, никогда не сериализуется
	Role         string    `json:"role"`     // Роль пользователя, admin или user
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitize возвращает копию пользователя без хэша пароля.
// Используется перед возвратом пользователя из бизнес-логики.
func (u User) Sanitize() User {
	u.PasswordHash = ""
	return u
}

// IsAdmin сообщает, имеет ли пользователь роль администратора.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
