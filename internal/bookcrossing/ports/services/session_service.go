package services

import (
	"context"
	"time"

	"bookcrossing/internal/bookcrossing/domain/services"
)

// SessionTokenService подписывает и проверяет токены сессии.
type SessionTokenService interface {
	Sign(ctx context.Context, claims services.SessionClaims) (string, error)

	Parse(ctx context.Context, token string) (*services.SessionClaims, error)
}

// SessionStore хранит серверную часть сессий.
type SessionStore interface {
	Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error

	// Lookup возвращает пользователя сессии или services.ErrSessionNotFound.
	Lookup(ctx context.Context, sessionID string) (string, error)

	Delete(ctx context.Context, sessionID string) error
}
