// Package postgres реализует репозитории сервиса поверх PostgreSQL.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bookcrossing/internal/bookcrossing/ports/repositories"
)

// PgxPoolInterface - подмножество pgxpool.Pool, которое нужно репозиториям.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
}

// RepositoryFactory создает репозитории, работающие с одним пулом.
type RepositoryFactory struct {
	userRepo repositories.UserRepository
	bookRepo repositories.BookRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo: NewUserRepository(pool),
		bookRepo: NewBookRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// BookRepository возвращает репозиторий книг.
func (f *RepositoryFactory) BookRepository() repositories.BookRepository {
	return f.bookRepo
}
