package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"bookcrossing/internal/bookcrossing/domain/entities"
	"bookcrossing/internal/bookcrossing/ports/repositories"
	"bookcrossing/pkg/logger"
)

const bookColumns = `id, title, author, cover_ref, owner_id, available, holder_id, created_at, taken_at`

// BookRepository реализует repositories.BookRepository для Postgres.
type BookRepository struct {
	pool PgxPoolInterface
}

// NewBookRepository создает новый репозиторий книг.
func NewBookRepository(pool PgxPoolInterface) repositories.BookRepository {
	return &BookRepository{pool: pool}
}

func scanBook(row pgx.Row) (*entities.Book, error) {
	var book entities.Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.CoverRef,
		&book.OwnerID,
		&book.Available,
		&book.HolderID,
		&book.CreatedAt,
		&book.TakenAt,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Create сохраняет новую книгу.
func (r *BookRepository) Create(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "Create"))
	log.Debug(ctx, "creating book", zap.String("ownerID", book.OwnerID))

	query := `
        INSERT INTO books (title, author, cover_ref, owner_id)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + bookColumns

	created, err := scanBook(r.pool.QueryRow(ctx, query, book.Title, book.Author, book.CoverRef, book.OwnerID))
	if err != nil {
		log.Error(ctx, "error creating book", zap.Error(err))
		return nil, fmt.Errorf("error creating book: %w", err)
	}

	log.Debug(ctx, "book created", zap.String("bookID", created.ID))
	return created, nil
}

// GetByID находит книгу по ID.
func (r *BookRepository) GetByID(ctx context.Context, id string) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "GetByID"))

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "book not found", zap.String("bookID", id))
			return nil, entities.ErrBookNotFound
		}
		log.Error(ctx, "error finding book by id", zap.Error(err))
		return nil, fmt.Errorf("error querying book by id: %w", err)
	}

	return book, nil
}

// ListAvailable возвращает доступные книги в порядке добавления.
func (r *BookRepository) ListAvailable(ctx context.Context) ([]*entities.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE available ORDER BY created_at, id`
	return r.list(ctx, "ListAvailable", query)
}

// ListByOwner возвращает книги, выставленные пользователем.
func (r *BookRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE owner_id = $1 ORDER BY created_at, id`
	return r.list(ctx, "ListByOwner", query, ownerID)
}

// ListHeldBy возвращает книги, которые забрал пользователь.
func (r *BookRepository) ListHeldBy(ctx context.Context, holderID string) ([]*entities.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE holder_id = $1 ORDER BY taken_at, id`
	return r.list(ctx, "ListHeldBy", query, holderID)
}

// MarkTaken выполняет переход "доступна -> забрана" одним условным UPDATE.
// Из двух конкурентных вызовов строку изменит только один.
func (r *BookRepository) MarkTaken(ctx context.Context, bookID, holderID string) (*entities.Book, bool, error) {
	log := logger.Log(ctx).With(
		zap.String("repository", "book"),
		zap.String("method", "MarkTaken"),
		zap.String("bookID", bookID),
		zap.String("holderID", holderID),
	)

	query := `
        UPDATE books
        SET available = FALSE, holder_id = $2, taken_at = NOW()
        WHERE id = $1 AND available AND owner_id <> $2
        RETURNING ` + bookColumns

	book, err := scanBook(r.pool.QueryRow(ctx, query, bookID, holderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "conditional update matched no rows")
			return nil, false, nil
		}
		log.Error(ctx, "error marking book as taken", zap.Error(err))
		return nil, false, fmt.Errorf("error marking book as taken: %w", err)
	}

	return book, true, nil
}

func (r *BookRepository) list(ctx context.Context, method, query string, args ...interface{}) ([]*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", method))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "error querying books", zap.Error(err))
		return nil, fmt.Errorf("error querying books: %w", err)
	}
	defer rows.Close()

	books := make([]*entities.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			log.Error(ctx, "error scanning book row", zap.Error(err))
			return nil, fmt.Errorf("error scanning book row: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating book rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}

	return books, nil
}
