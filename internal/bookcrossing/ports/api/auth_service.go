// Package api определяет порты прикладного уровня, которые использует HTTP слой.
package api

import (
	"context"

	"bookcrossing/internal/bookcrossing/domain/entities"
	"bookcrossing/internal/bookcrossing/domain/services"
)

// AuthUseCase - хранилище учетных данных и аутентификатор сессий.
type AuthUseCase interface {
	Register(ctx context.Context, email, password string) (string, error)

	Verify(ctx context.Context, email, password string) (string, error)

	Login(ctx context.Context, userID string) (*services.Session, error)

	CurrentUser(ctx context.Context, token string) (services.Identity, error)

	Logout(ctx context.Context, token string) error

	Profile(ctx context.Context, identity services.Identity) (*entities.User, error)
}
