package api

import (
	"context"

	"bookcrossing/internal/bookcrossing/domain/entities"
	"bookcrossing/internal/bookcrossing/domain/services"
	ports "bookcrossing/internal/bookcrossing/ports/services"
)

// Dashboard - книги пользователя: выставленные им и находящиеся у него.
type Dashboard struct {
	Owned []*entities.Book `json:"owned"`
	Held  []*entities.Book `json:"held"`
}

// BookUseCase - каталог книг.
type BookUseCase interface {
	Add(ctx context.Context, identity services.Identity, title, author string, cover *ports.CoverUpload) (*entities.Book, error)

	ListAvailable(ctx context.Context) ([]*entities.Book, error)

	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Book, error)

	ListHeldBy(ctx context.Context, userID string) ([]*entities.Book, error)

	GetByID(ctx context.Context, bookID string) (*entities.Book, error)

	Dashboard(ctx context.Context, identity services.Identity) (*Dashboard, error)
}

// CustodyUseCase - переход книги из доступной в забранную.
type CustodyUseCase interface {
	Take(ctx context.Context, identity services.Identity, bookID string) (*entities.Book, error)
}
