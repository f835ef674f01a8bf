package entities

import (
	"errors"
	"time"
)

// DefaultCover - обложка, используемая, когда файл не передан или не подходит по типу.
const DefaultCover = "default_cover.jpg"

// Ошибки домена книг.
var (
	ErrBookNotFound = errors.New("book not found")
	ErrAlreadyTaken = errors.New("book has already been taken")
	ErrSelfTake     = errors.New("owner cannot take their own book")
)

// Book - книга, выставленная владельцем.
//
// Пока книга доступна, HolderID пуст. После того как ее забрал другой пользователь,
// Available становится false, а HolderID указывает на него. Владелец не меняется.
type Book struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	CoverRef  string     `json:"cover_ref"`
	OwnerID   string     `json:"owner_id"`
	Available bool       `json:"available"`
	HolderID  *string    `json:"holder_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	TakenAt   *time.Time `json:"taken_at,omitempty"`
}

// NewBook создает доступную книгу без держателя.
func NewBook(ownerID, title, author, coverRef string) *Book {
	if coverRef == "" {
		coverRef = DefaultCover
	}
	return &Book{
		OwnerID:   ownerID,
		Title:     title,
		Author:    author,
		CoverRef:  coverRef,
		Available: true,
		CreatedAt: time.Now().UTC(),
	}
}

// IsHeldBy сообщает, находится ли книга у пользователя userID.
func (b *Book) IsHeldBy(userID string) bool {
	return b.HolderID != nil && *b.HolderID == userID
}

// CheckTake проверяет, может ли requesterID забрать книгу.
// Порядок проверок важен: уже забранная книга отклоняется раньше, чем попытка владельца.
func (b *Book) CheckTake(requesterID string) error {
	if !b.Available {
		return ErrAlreadyTaken
	}
	if b.OwnerID == requesterID {
		return ErrSelfTake
	}
	return nil
}
