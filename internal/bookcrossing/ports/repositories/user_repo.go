// Package repositories определяет порты хранилища.
package repositories

import (
	"context"

	"bookcrossing/internal/bookcrossing/domain/entities"
)

// UserRepository определяет операции хранения пользователей.
type UserRepository interface {
	// Create сохраняет пользователя. Нарушение уникальности email
	// возвращается как services.ErrEmailAlreadyExists.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}
