// Package entities содержит сущности домена обмена книгами.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrEmptyUserID  = errors.New("user ID cannot be empty")
	ErrUserNotFound = errors.New("user not found")
)

// User - зарегистрированный пользователь. После регистрации не изменяется.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
