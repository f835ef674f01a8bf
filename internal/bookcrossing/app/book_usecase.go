package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookcrossing/internal/bookcrossing/app/validation"
	"bookcrossing/internal/bookcrossing/domain/entities"
	"bookcrossing/internal/bookcrossing/domain/services"
	"bookcrossing/internal/bookcrossing/ports/api"
	"bookcrossing/internal/bookcrossing/ports/repositories"
	svc "bookcrossing/internal/bookcrossing/ports/services"
	"bookcrossing/pkg/logger"
)

const (
	methodAddBook       = "AddBook"
	methodListAvailable = "ListAvailable"
	methodListByOwner   = "ListByOwner"
	methodListHeldBy    = "ListHeldBy"
	methodGetBook       = "GetBook"
	methodDashboard     = "Dashboard"

	msgAddingBook       = "adding book"
	msgInvalidBookInput = "book input rejected"
	msgBookAdded        = "book added"

	msgErrStoringCover = "failed to store cover"
	msgErrRemoveCover  = "failed to remove cover of unsaved book"
	msgErrCreatingBook = "failed to create book"
	msgErrListingBooks = "failed to list books"
	msgErrGettingBook  = "failed to get book"

	errCtxStoringCover = "storing cover"
	errCtxCreatingBook = "creating book"
	errCtxListingBooks = "listing books"
	errCtxGettingBook  = "getting book"
	errCtxDashboard    = "building dashboard"
)

// BookUseCaseImpl реализует интерфейс BookUseCase.
type BookUseCaseImpl struct {
	bookRepo   repositories.BookRepository
	coverStore svc.CoverStore
}

// NewBookUseCase создает новый экземпляр каталога книг.
func NewBookUseCase(bookRepo repositories.BookRepository, coverStore svc.CoverStore) api.BookUseCase {
	return &BookUseCaseImpl{
		bookRepo:   bookRepo,
		coverStore: coverStore,
	}
}

// Add выставляет новую книгу от имени пользователя identity.
func (b *BookUseCaseImpl) Add(
	ctx context.Context,
	identity services.Identity,
	title, author string,
	cover *svc.CoverUpload,
) (*entities.Book, error) {
	if !identity.Authenticated() {
		return nil, services.ErrUnauthenticated
	}

	log := logger.Log(ctx).With(zap.String("method", methodAddBook), zap.String("ownerID", identity.UserID))

	input := validation.AddBookInput{Title: title, Author: author}
	if err := input.Validate(); err != nil {
		log.Debug(ctx, msgInvalidBookInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	log.Debug(ctx, msgAddingBook, zap.String("title", input.Title))

	coverRef := entities.DefaultCover
	if b.coverStore != nil {
		ref, err := b.coverStore.Save(ctx, cover)
		if err != nil {
			log.Error(ctx, msgErrStoringCover, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxStoringCover, err)
		}
		coverRef = ref
	}

	book, err := b.bookRepo.Create(ctx, entities.NewBook(identity.UserID, input.Title, input.Author, coverRef))
	if err != nil {
		log.Error(ctx, msgErrCreatingBook, zap.Error(err))
		if coverRef != entities.DefaultCover {
			if delErr := b.coverStore.Delete(ctx, coverRef); delErr != nil {
				log.Warn(ctx, msgErrRemoveCover, zap.String("cover", coverRef), zap.Error(delErr))
			}
		}
		return nil, fmt.Errorf("%s: %w", errCtxCreatingBook, err)
	}

	log.Info(ctx, msgBookAdded, zap.String("bookID", book.ID))
	return book, nil
}

// ListAvailable возвращает книги, которые можно забрать.
func (b *BookUseCaseImpl) ListAvailable(ctx context.Context) ([]*entities.Book, error) {
	books, err := b.bookRepo.ListAvailable(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrListingBooks, zap.String("method", methodListAvailable), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingBooks, err)
	}
	return books, nil
}

// ListByOwner возвращает книги, выставленные ownerID.
func (b *BookUseCaseImpl) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Book, error) {
	books, err := b.bookRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrListingBooks, zap.String("method", methodListByOwner), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingBooks, err)
	}
	return books, nil
}

// ListHeldBy возвращает книги, находящиеся у userID.
func (b *BookUseCaseImpl) ListHeldBy(ctx context.Context, userID string) ([]*entities.Book, error) {
	books, err := b.bookRepo.ListHeldBy(ctx, userID)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrListingBooks, zap.String("method", methodListHeldBy), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingBooks, err)
	}
	return books, nil
}

// GetByID возвращает книгу. Некорректный ID обрабатывается как отсутствующая книга.
func (b *BookUseCaseImpl) GetByID(ctx context.Context, bookID string) (*entities.Book, error) {
	if _, err := uuid.Parse(bookID); err != nil {
		return nil, entities.ErrBookNotFound
	}

	book, err := b.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		logger.Log(ctx).Debug(ctx, msgErrGettingBook, zap.String("method", methodGetBook), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGettingBook, err)
	}
	return book, nil
}

// Dashboard возвращает книги, выставленные пользователем и находящиеся у него.
func (b *BookUseCaseImpl) Dashboard(ctx context.Context, identity services.Identity) (*api.Dashboard, error) {
	if !identity.Authenticated() {
		return nil, services.ErrUnauthenticated
	}

	owned, err := b.ListByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxDashboard, err)
	}

	held, err := b.ListHeldBy(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxDashboard, err)
	}

	logger.Log(ctx).Debug(ctx, "dashboard built",
		zap.String("method", methodDashboard),
		zap.Int("owned", len(owned)),
		zap.Int("held", len(held)),
	)
	return &api.Dashboard{Owned: owned, Held: held}, nil
}
