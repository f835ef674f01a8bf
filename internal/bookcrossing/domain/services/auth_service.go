// Package services содержит доменные типы и ошибки аутентификации и сессий.
package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrUnauthenticated    = errors.New("authentication required")
)

// Identity - результат разрешения сессии для одного запроса.
// Нулевое значение означает анонимного пользователя.
type Identity struct {
	UserID    string
	SessionID string
}

// Authenticated сообщает, связан ли запрос с пользователем.
func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

// Session - установленная сессия и подписанный токен для cookie.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
}
