package repositories

import (
	"context"

	"bookcrossing/internal/bookcrossing/domain/entities"
)

// BookRepository определяет операции хранения книг.
type BookRepository interface {
	Create(ctx context.Context, book *entities.Book) (*entities.Book, error)

	GetByID(ctx context.Context, id string) (*entities.Book, error)

	ListAvailable(ctx context.Context) ([]*entities.Book, error)

	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Book, error)

	ListHeldBy(ctx context.Context, holderID string) ([]*entities.Book, error)

	// MarkTaken атомарно переводит доступную книгу, принадлежащую не holderID,
	// в состояние "забрана". Возвращает false, если ни одна строка не изменилась.
	MarkTaken(ctx context.Context, bookID, holderID string) (*entities.Book, bool, error)
}
