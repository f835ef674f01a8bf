package app_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookcrossing/internal/bookcrossing/app"
	"bookcrossing/internal/bookcrossing/app/validation"
	"bookcrossing/internal/bookcrossing/domain/entities"
	"bookcrossing/internal/bookcrossing/domain/services"
	ports "bookcrossing/internal/bookcrossing/ports/services"
)

var (
	alice = services.Identity{UserID: "user-a", SessionID: "sid-a"}
	bob   = services.Identity{UserID: "user-b", SessionID: "sid-b"}
	carol = services.Identity{UserID: "user-c", SessionID: "sid-c"}
)

func TestAddBook(t *testing.T) {
	ctx := context.Background()

	t.Run("persists an available book with the stored cover", func(t *testing.T) {
		books := newMemBookRepository()
		covers := &mockCoverStore{}
		upload := &ports.CoverUpload{Filename: "dune.png", Content: strings.NewReader("img")}
		covers.On("Save", mock.Anything, upload).Return("key_dune.png", nil).Once()

		book, err := app.NewBookUseCase(books, covers).Add(ctx, alice, " Dune ", "Herbert", upload)

		require.NoError(t, err)
		assert.Equal(t, "Dune", book.Title)
		assert.Equal(t, "key_dune.png", book.CoverRef)
		assert.Equal(t, alice.UserID, book.OwnerID)
		assert.True(t, book.Available)
		assert.Nil(t, book.HolderID)
		covers.AssertExpectations(t)
	})

	t.Run("default cover when store returns sentinel", func(t *testing.T) {
		covers := &mockCoverStore{}
		covers.On("Save", mock.Anything, (*ports.CoverUpload)(nil)).Return(entities.DefaultCover, nil).Once()

		book, err := app.NewBookUseCase(newMemBookRepository(), covers).Add(ctx, alice, "Dune", "Herbert", nil)

		require.NoError(t, err)
		assert.Equal(t, entities.DefaultCover, book.CoverRef)
	})

	t.Run("validation failure stores nothing", func(t *testing.T) {
		books := newMemBookRepository()
		covers := &mockCoverStore{}

		_, err := app.NewBookUseCase(books, covers).Add(ctx, alice, "", strings.Repeat("a", 101), nil)

		var verrs validation.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "is required", verrs["title"])
		assert.Equal(t, "must be at most 100 characters", verrs["author"])
		covers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

		available, err := books.ListAvailable(ctx)
		require.NoError(t, err)
		assert.Empty(t, available)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := app.NewBookUseCase(newMemBookRepository(), nil).Add(ctx, services.Identity{}, "Dune", "Herbert", nil)

		assert.ErrorIs(t, err, services.ErrUnauthenticated)
	})

	t.Run("repository failure", func(t *testing.T) {
		books := &mockBookRepository{}
		books.On("Create", mock.Anything, mock.Anything).Return(nil, errDatabase).Once()

		_, err := app.NewBookUseCase(books, nil).Add(ctx, alice, "Dune", "Herbert", nil)

		assert.ErrorIs(t, err, errDatabase)
	})

	t.Run("repository failure removes the stored cover", func(t *testing.T) {
		books := &mockBookRepository{}
		covers := &mockCoverStore{}
		upload := &ports.CoverUpload{Filename: "dune.png", Content: strings.NewReader("img")}
		covers.On("Save", mock.Anything, upload).Return("key_dune.png", nil).Once()
		covers.On("Delete", mock.Anything, "key_dune.png").Return(nil).Once()
		books.On("Create", mock.Anything, mock.Anything).Return(nil, errDatabase).Once()

		_, err := app.NewBookUseCase(books, covers).Add(ctx, alice, "Dune", "Herbert", upload)

		assert.ErrorIs(t, err, errDatabase)
		covers.AssertExpectations(t)
	})

	t.Run("repository failure with default cover deletes nothing", func(t *testing.T) {
		books := &mockBookRepository{}
		covers := &mockCoverStore{}
		covers.On("Save", mock.Anything, (*ports.CoverUpload)(nil)).Return(entities.DefaultCover, nil).Once()
		books.On("Create", mock.Anything, mock.Anything).Return(nil, errDatabase).Once()

		_, err := app.NewBookUseCase(books, covers).Add(ctx, alice, "Dune", "Herbert", nil)

		assert.ErrorIs(t, err, errDatabase)
		covers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestListAvailable_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	catalog := app.NewBookUseCase(newMemBookRepository(), nil)

	for _, title := range []string{"Dune", "Emma", "Ulysses"} {
		_, err := catalog.Add(ctx, alice, title, "Author", nil)
		require.NoError(t, err)
	}

	books, err := catalog.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Emma", books[1].Title)
	assert.Equal(t, "Ulysses", books[2].Title)
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	catalog := app.NewBookUseCase(newMemBookRepository(), nil)

	added, err := catalog.Add(ctx, alice, "Dune", "Herbert", nil)
	require.NoError(t, err)

	found, err := catalog.GetByID(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added.ID, found.ID)

	_, err = catalog.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, entities.ErrBookNotFound)

	_, err = catalog.GetByID(ctx, "7f1c6f5e-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, entities.ErrBookNotFound)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := app.NewBookUseCase(newMemBookRepository(), nil).Dashboard(ctx, services.Identity{})

		assert.ErrorIs(t, err, services.ErrUnauthenticated)
	})

	t.Run("listing failure", func(t *testing.T) {
		books := &mockBookRepository{}
		books.On("ListByOwner", mock.Anything, alice.UserID).Return(nil, errDatabase).Once()

		_, err := app.NewBookUseCase(books, nil).Dashboard(ctx, alice)

		assert.ErrorIs(t, err, errDatabase)
	})
}
