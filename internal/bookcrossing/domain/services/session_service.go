package services

import (
	"errors"
	"time"
)

// Ошибки токенов сессии.
var (
	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrExpiredSessionToken = errors.New("session token has expired")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSigningSession      = errors.New("failed to sign session token")
)

// SessionClaims - данные, которые несет подписанный токен сессии.
type SessionClaims struct {
	UserID    string
	SessionID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
