package app

import "bookcrossing/internal/bookcrossing/ports/api"

// Application собирает сценарии использования, с которыми работает HTTP слой.
type Application struct {
	Auth    api.AuthUseCase
	Books   api.BookUseCase
	Custody api.CustodyUseCase
}

// NewApplication создает приложение из готовых сценариев.
func NewApplication(auth api.AuthUseCase, books api.BookUseCase, custody api.CustodyUseCase) *Application {
	return &Application{
		Auth:    auth,
		Books:   books,
		Custody: custody,
	}
}
