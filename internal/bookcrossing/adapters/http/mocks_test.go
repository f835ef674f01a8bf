package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bookcrossing/internal/bookcrossing/domain/entities"
	"bookcrossing/internal/bookcrossing/domain/services"
	"bookcrossing/internal/bookcrossing/ports/api"
	ports "bookcrossing/internal/bookcrossing/ports/services"
)

type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) Register(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *mockAuthUseCase) Verify(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *mockAuthUseCase) Login(ctx context.Context, userID string) (*services.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Session), args.Error(1)
}

func (m *mockAuthUseCase) CurrentUser(ctx context.Context, token string) (services.Identity, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(services.Identity), args.Error(1)
}

func (m *mockAuthUseCase) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockAuthUseCase) Profile(ctx context.Context, identity services.Identity) (*entities.User, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockBookUseCase struct {
	mock.Mock
}

func (m *mockBookUseCase) Add(
	ctx context.Context,
	identity services.Identity,
	title, author string,
	cover *ports.CoverUpload,
) (*entities.Book, error) {
	args := m.Called(ctx, identity, title, author, cover)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Book), args.Error(1)
}

func (m *mockBookUseCase) ListAvailable(ctx context.Context) ([]*entities.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Book), args.Error(1)
}

func (m *mockBookUseCase) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Book, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Book), args.Error(1)
}

func (m *mockBookUseCase) ListHeldBy(ctx context.Context, userID string) ([]*entities.Book, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Book), args.Error(1)
}

func (m *mockBookUseCase) GetByID(ctx context.Context, bookID string) (*entities.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Book), args.Error(1)
}

func (m *mockBookUseCase) Dashboard(ctx context.Context, identity services.Identity) (*api.Dashboard, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Dashboard), args.Error(1)
}

type mockCustodyUseCase struct {
	mock.Mock
}

func (m *mockCustodyUseCase) Take(ctx context.Context, identity services.Identity, bookID string) (*entities.Book, error) {
	args := m.Called(ctx, identity, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Book), args.Error(1)
}
