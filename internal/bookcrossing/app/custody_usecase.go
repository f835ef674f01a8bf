package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookcrossing/internal/bookcrossing/domain/entities"
	"bookcrossing/internal/bookcrossing/domain/services"
	"bookcrossing/internal/bookcrossing/ports/api"
	"bookcrossing/internal/bookcrossing/ports/repositories"
	"bookcrossing/pkg/logger"
)

const (
	methodTake = "Take"

	msgTakeAttempt  = "take attempt"
	msgTakeRejected = "take rejected"
	msgLostRace     = "book was taken concurrently"
	msgBookTaken    = "book taken"

	msgErrLoadingBook = "failed to load book"
	msgErrMarkTaken   = "failed to mark book as taken"

	errCtxLoadingBook = "loading book"
	errCtxCheckTake   = "checking take"
	errCtxMarkTaken   = "marking book as taken"
)

// CustodyUseCaseImpl реализует интерфейс CustodyUseCase.
type CustodyUseCaseImpl struct {
	bookRepo repositories.BookRepository
}

// NewCustodyUseCase создает новый экземпляр сценария "забрать книгу".
func NewCustodyUseCase(bookRepo repositories.BookRepository) api.CustodyUseCase {
	return &CustodyUseCaseImpl{bookRepo: bookRepo}
}

// Take передает книгу bookID пользователю identity.
//
// Проверки: книги нет -> ErrBookNotFound, книга не доступна -> ErrAlreadyTaken,
// владелец забирает свою книгу -> ErrSelfTake. Сам переход выполняется условным
// обновлением в хранилище, и проигравший гонку получает ErrAlreadyTaken.
func (c *CustodyUseCaseImpl) Take(ctx context.Context, identity services.Identity, bookID string) (*entities.Book, error) {
	if !identity.Authenticated() {
		return nil, services.ErrUnauthenticated
	}

	log := logger.Log(ctx).With(
		zap.String("method", methodTake),
		zap.String("bookID", bookID),
		zap.String("userID", identity.UserID),
	)
	log.Debug(ctx, msgTakeAttempt)

	if _, err := uuid.Parse(bookID); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingBook, entities.ErrBookNotFound)
	}

	book, err := c.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		log.Debug(ctx, msgErrLoadingBook, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingBook, err)
	}

	if err := book.CheckTake(identity.UserID); err != nil {
		log.Debug(ctx, msgTakeRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckTake, err)
	}

	taken, updated, err := c.bookRepo.MarkTaken(ctx, bookID, identity.UserID)
	if err != nil {
		log.Error(ctx, msgErrMarkTaken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxMarkTaken, err)
	}
	if !updated {
		log.Info(ctx, msgLostRace)
		return nil, fmt.Errorf("%s: %w", errCtxMarkTaken, entities.ErrAlreadyTaken)
	}

	log.Info(ctx, msgBookTaken, zap.String("ownerID", taken.OwnerID))
	return taken, nil
}
