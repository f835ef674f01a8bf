package services

import "errors"

// Ошибки, связанные с паролями.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("invalid password")
)

// Ограничения пароля. Минимум считается в символах, максимум в байтах:
// bcrypt не принимает больше 72 байт.
const (
	MinPasswordLength = 3
	MaxPasswordBytes  = 72
)
