package app_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"bookcrossing/internal/bookcrossing/domain/entities"
	"bookcrossing/internal/bookcrossing/domain/services"
)

// memUserRepository хранит пользователей в памяти с уникальным email.
type memUserRepository struct {
	mu      sync.Mutex
	byID    map[string]*entities.User
	byEmail map[string]string
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{byID: map[string]*entities.User{}, byEmail: map[string]string{}}
}

func (r *memUserRepository) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return nil, services.ErrEmailAlreadyExists
	}
	created := *user
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now()
	r.byID[created.ID] = &created
	r.byEmail[created.Email] = created.ID
	return &created, nil
}

func (r *memUserRepository) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	copied := *r.byID[id]
	return &copied, nil
}

// memBookRepository повторяет семантику условного UPDATE под мьютексом.
type memBookRepository struct {
	mu    sync.Mutex
	seq   int
	books map[string]*entities.Book
	order map[string]int
}

func newMemBookRepository() *memBookRepository {
	return &memBookRepository{books: map[string]*entities.Book{}, order: map[string]int{}}
}

func cloneBook(b *entities.Book) *entities.Book {
	copied := *b
	if b.HolderID != nil {
		holder := *b.HolderID
		copied.HolderID = &holder
	}
	if b.TakenAt != nil {
		takenAt := *b.TakenAt
		copied.TakenAt = &takenAt
	}
	return &copied
}

func (r *memBookRepository) Create(_ context.Context, book *entities.Book) (*entities.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := cloneBook(book)
	created.ID = uuid.NewString()
	created.Available = true
	created.HolderID = nil
	r.seq++
	r.order[created.ID] = r.seq
	r.books[created.ID] = created
	return cloneBook(created), nil
}

func (r *memBookRepository) GetByID(_ context.Context, id string) (*entities.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[id]
	if !ok {
		return nil, entities.ErrBookNotFound
	}
	return cloneBook(book), nil
}

func (r *memBookRepository) filter(keep func(*entities.Book) bool) []*entities.Book {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*entities.Book, 0)
	for _, book := range r.books {
		if keep(book) {
			result = append(result, cloneBook(book))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return r.order[result[i].ID] < r.order[result[j].ID]
	})
	return result
}

func (r *memBookRepository) ListAvailable(_ context.Context) ([]*entities.Book, error) {
	return r.filter(func(b *entities.Book) bool { return b.Available }), nil
}

func (r *memBookRepository) ListByOwner(_ context.Context, ownerID string) ([]*entities.Book, error) {
	return r.filter(func(b *entities.Book) bool { return b.OwnerID == ownerID }), nil
}

func (r *memBookRepository) ListHeldBy(_ context.Context, holderID string) ([]*entities.Book, error) {
	return r.filter(func(b *entities.Book) bool { return b.IsHeldBy(holderID) }), nil
}

func (r *memBookRepository) MarkTaken(_ context.Context, bookID, holderID string) (*entities.Book, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[bookID]
	if !ok || !book.Available || book.OwnerID == holderID {
		return nil, false, nil
	}
	now := time.Now()
	holder := holderID
	book.Available = false
	book.HolderID = &holder
	book.TakenAt = &now
	return cloneBook(book), true, nil
}

// memSessionStore хранит сессии в памяти без учета TTL.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]string
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]string{}}
}

func (s *memSessionStore) Save(_ context.Context, sessionID, userID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = userID
	return nil
}

func (s *memSessionStore) Lookup(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.sessions[sessionID]
	if !ok {
		return "", services.ErrSessionNotFound
	}
	return userID, nil
}

func (s *memSessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
