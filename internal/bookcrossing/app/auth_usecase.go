// Package app содержит сценарии использования сервиса.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

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
	methodRegister    = "Register"
	methodVerify      = "Verify"
	methodLogin       = "Login"
	methodCurrentUser = "CurrentUser"
	methodLogout      = "Logout"
	methodProfile     = "Profile"

	msgStartRegistration   = "starting user registration"
	msgInvalidRegistration = "registration input rejected"
	msgEmailExists         = "user with this email already exists"
	msgUserRegistered      = "user registered successfully"
	msgVerifyUnknownEmail  = "verify attempt with non-existent email"
	msgVerifyWrongPassword = "invalid password provided"
	msgSessionCreated      = "session created"
	msgSessionRejected     = "session rejected"
	msgSessionUserMismatch = "session record belongs to another user"
	msgLogoutInvalidToken  = "logout with invalid token ignored"
	msgUserLoggedOut       = "user logged out successfully"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"
	msgErrSavingSession     = "failed to save session"
	msgErrSigningSession    = "failed to sign session token"
	msgErrLookupSession     = "failed to lookup session"
	msgErrDeletingSession   = "failed to delete session"

	errCtxValidatingInput    = "validating input"
	errCtxCheckingUser       = "checking existing user"
	errCtxEmailRegistered    = "email already registered"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxSavingSession      = "saving session"
	errCtxSigningSession     = "signing session"
	errCtxResolvingSession   = "resolving session"
	errCtxDeletingSession    = "deleting session"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo     repositories.UserRepository
	passwordSvc  svc.PasswordService
	tokenSvc     svc.SessionTokenService
	sessionStore svc.SessionStore
	sessionTTL   time.Duration
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.SessionTokenService,
	sessionStore svc.SessionStore,
	sessionTTL time.Duration,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:     userRepo,
		passwordSvc:  passwordSvc,
		tokenSvc:     tokenSvc,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

// Register создает нового пользователя и возвращает его ID.
func (a *AuthUseCaseImpl) Register(ctx context.Context, email, password string) (string, error) {
	input := validation.RegisterInput{Email: email, Password: password}
	if err := input.Validate(); err != nil {
		logger.Log(ctx).Debug(ctx, msgInvalidRegistration, zap.String("method", methodRegister), zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", input.Email))
	log.Debug(ctx, msgStartRegistration)

	existingUser, err := a.userRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgEmailExists)
		return "", fmt.Errorf("%s: %w", errCtxEmailRegistered, services.ErrEmailAlreadyExists)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, input.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	createdUser, err := a.userRepo.Create(ctx, &entities.User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyExists) {
			log.Debug(ctx, msgEmailExists)
			return "", fmt.Errorf("%s: %w", errCtxEmailRegistered, err)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))
	return createdUser.ID, nil
}

// Verify проверяет учетные данные. Неизвестный email и неверный пароль
// дают одну и ту же ошибку ErrInvalidCredentials.
func (a *AuthUseCaseImpl) Verify(ctx context.Context, email, password string) (string, error) {
	email = validation.NormalizeEmail(email)
	log := logger.Log(ctx).With(zap.String("method", methodVerify), zap.String("email", email))

	if email == "" || password == "" {
		return "", fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgVerifyUnknownEmail)
			return "", fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	ok, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !ok {
		log.Debug(ctx, msgVerifyWrongPassword)
		return "", fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	return user.ID, nil
}

// Login создает серверную сессию и подписанный токен для нее.
func (a *AuthUseCaseImpl) Login(ctx context.Context, userID string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("userID", userID))

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxSavingSession, entities.ErrEmptyUserID)
	}

	sessionID := uuid.NewString()
	now := time.Now()
	expiresAt := now.Add(a.sessionTTL)

	if err := a.sessionStore.Save(ctx, sessionID, userID, a.sessionTTL); err != nil {
		log.Error(ctx, msgErrSavingSession, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxSavingSession, err)
	}

	token, err := a.tokenSvc.Sign(ctx, services.SessionClaims{
		UserID:    userID,
		SessionID: sessionID,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		log.Error(ctx, msgErrSigningSession, zap.Error(err))
		if delErr := a.sessionStore.Delete(ctx, sessionID); delErr != nil {
			log.Warn(ctx, msgErrDeletingSession, zap.Error(delErr))
		}
		return nil, fmt.Errorf("%s: %w", errCtxSigningSession, err)
	}

	log.Info(ctx, msgSessionCreated, zap.Time("expiresAt", expiresAt))
	return &services.Session{
		ID:        sessionID,
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// CurrentUser разрешает токен в личность пользователя.
func (a *AuthUseCaseImpl) CurrentUser(ctx context.Context, token string) (services.Identity, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCurrentUser))

	if token == "" {
		return services.Identity{}, services.ErrUnauthenticated
	}

	claims, err := a.tokenSvc.Parse(ctx, token)
	if err != nil {
		log.Debug(ctx, msgSessionRejected, zap.Error(err))
		return services.Identity{}, fmt.Errorf("%s: %w: %w", errCtxResolvingSession, services.ErrUnauthenticated, err)
	}

	userID, err := a.sessionStore.Lookup(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			log.Debug(ctx, msgSessionRejected, zap.Error(err))
			return services.Identity{}, fmt.Errorf("%s: %w", errCtxResolvingSession, services.ErrUnauthenticated)
		}
		log.Error(ctx, msgErrLookupSession, zap.Error(err))
		return services.Identity{}, fmt.Errorf("%s: %w", errCtxResolvingSession, err)
	}

	if userID != claims.UserID {
		log.Warn(ctx, msgSessionUserMismatch)
		return services.Identity{}, fmt.Errorf("%s: %w", errCtxResolvingSession, services.ErrUnauthenticated)
	}

	return services.Identity{UserID: userID, SessionID: claims.SessionID}, nil
}

// Logout удаляет серверную сессию. Для невалидного токена ничего не делает.
func (a *AuthUseCaseImpl) Logout(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))

	claims, err := a.tokenSvc.Parse(ctx, token)
	if err != nil {
		log.Debug(ctx, msgLogoutInvalidToken, zap.Error(err))
		return nil
	}

	if err := a.sessionStore.Delete(ctx, claims.SessionID); err != nil {
		log.Error(ctx, msgErrDeletingSession, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingSession, err)
	}

	log.Info(ctx, msgUserLoggedOut, zap.String("userID", claims.UserID))
	return nil
}

// Profile возвращает пользователя текущей сессии.
func (a *AuthUseCaseImpl) Profile(ctx context.Context, identity services.Identity) (*entities.User, error) {
	if !identity.Authenticated() {
		return nil, services.ErrUnauthenticated
	}

	user, err := a.userRepo.FindByID(ctx, identity.UserID)
	if err != nil {
		logger.Log(ctx).Debug(ctx, msgErrFindingUser, zap.String("method", methodProfile), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	return user, nil
}
