package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"bookcrossing/internal/bookcrossing/domain/services"
	svc "bookcrossing/internal/bookcrossing/ports/services"
)

const (
	errMsgPasswordEmpty    = "password is empty"
	errMsgPasswordTooShort = "password is too short"
	errMsgPasswordTooLong  = "password exceeds bcrypt byte limit"
	errMsgHashFailed       = "failed to generate password hash"
	errMsgCompareFailed    = "error comparing password with hash"
)

// ServiceBcrypt хэширует пароли пользователей bcrypt с фиксированной стоимостью.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt создает сервис паролей. Стоимость вне [bcrypt.MinCost, bcrypt.MaxCost]
// заменяется на bcrypt.DefaultCost.
func NewBcrypt(cost int) svc.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

// checkPolicy проверяет длину пароля до обращения к bcrypt.
func checkPolicy(password string) error {
	switch {
	case password == "":
		return fmt.Errorf("%s: %w", errMsgPasswordEmpty, services.ErrInvalidPassword)
	case utf8.RuneCountInString(password) < services.MinPasswordLength:
		return fmt.Errorf("%s: %w", errMsgPasswordTooShort, services.ErrInvalidPassword)
	case len(password) > services.MaxPasswordBytes:
		return fmt.Errorf("%s: %w", errMsgPasswordTooLong, services.ErrInvalidPassword)
	}
	return nil
}

// Hash возвращает bcrypt-хэш пароля.
func (s *ServiceBcrypt) Hash(_ context.Context, password string) (string, error) {
	if err := checkPolicy(password); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", errMsgHashFailed, services.ErrHashingFailed, err)
	}
	return string(hashed), nil
}

// Verify сообщает, соответствует ли пароль хэшу. Несовпадение и пароль длиннее
// лимита bcrypt - это (false, nil).
func (s *ServiceBcrypt) Verify(_ context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" {
		return false, services.ErrInvalidPassword
	}
	if len(password) > services.MaxPasswordBytes {
		return false, nil
	}

	switch err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w", errMsgCompareFailed, err)
	}
}
