package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bookcrossing/internal/bookcrossing/domain/services"
	"bookcrossing/internal/bookcrossing/ports/api"
	"bookcrossing/pkg/logger"
)

// Константы для логирования.
const (
	LogSessionMiddleware = "session middleware"

	ErrorResolvingSession  = "failed to resolve session"
	ErrorAuthRequired      = "authentication required"
	LoginURL               = "/api/v1/auth/login"
	identityLocalsKey      = "identity"
	sessionTokenLocalsKey  = "sessionToken"
	msgAnonymousRequest    = "anonymous request"
	msgAuthenticatedCaller = "caller authenticated"
)

// NewSessionMiddleware разрешает cookie сессии в личность пользователя.
// Запрос без валидной сессии продолжается анонимно.
func NewSessionMiddleware(auth api.AuthUseCase, cookieName string) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "session"))

		token := ctx.Cookies(cookieName)
		if token == "" {
			return ctx.Next()
		}

		identity, err := auth.CurrentUser(requestCtx, token)
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				log.Debug(requestCtx, msgAnonymousRequest, zap.Error(err))
				return ctx.Next()
			}
			log.Error(requestCtx, ErrorResolvingSession, zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
		}

		log.Debug(requestCtx, msgAuthenticatedCaller, zap.String("userID", identity.UserID))
		ctx.Locals(identityLocalsKey, identity)
		ctx.Locals(sessionTokenLocalsKey, token)

		return ctx.Next()
	}
}

// RequireAuth отклоняет анонимные запросы со статусом 401 и ссылкой на вход.
func RequireAuth() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		if IdentityFrom(ctx).Authenticated() {
			return ctx.Next()
		}

		logger.Log(ctx.Context()).Debug(ctx.Context(), LogSessionMiddleware, zap.String("result", "rejected"))
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":     ErrorAuthRequired,
			"login_url": LoginURL,
		})
	}
}

// IdentityFrom возвращает личность, установленную NewSessionMiddleware.
func IdentityFrom(ctx fiber.Ctx) services.Identity {
	identity, _ := ctx.Locals(identityLocalsKey).(services.Identity)
	return identity
}

// SessionTokenFrom возвращает токен текущей сессии.
func SessionTokenFrom(ctx fiber.Ctx) string {
	token, _ := ctx.Locals(sessionTokenLocalsKey).(string)
	return token
}
