// Package services содержит реализации вспомогательных сервисов:
// хэширование паролей и подпись токенов сессии.
package services

import (
	"bookcrossing/internal/bookcrossing/ports/services"
)

// ServiceFactory создает все необходимые сервисы для аутентификации.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.SessionTokenService
}

// NewServiceFactory создает новую фабрику сервисов.
func NewServiceFactory(sessionSecretKey string, bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    NewSessionToken(sessionSecretKey),
	}
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// SessionTokenService возвращает сервис подписи токенов сессии.
func (f *ServiceFactory) SessionTokenService() services.SessionTokenService {
	return f.tokenService
}
