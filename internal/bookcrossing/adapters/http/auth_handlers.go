package http

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bookcrossing/internal/bookcrossing/adapters/http/middleware"
	"bookcrossing/internal/bookcrossing/app/validation"
	"bookcrossing/internal/bookcrossing/ports/api"
	"bookcrossing/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister   = "auth handler: register"
	LogHandlerLogin      = "auth handler: login"
	LogHandlerLogout     = "auth handler: logout"
	LogHandlerGetProfile = "auth handler: get profile"
)

// CookieOptions задает параметры cookie сессии.
type CookieOptions struct {
	Name   string
	Secure bool
}

// AuthHandler содержит HTTP обработчики аутентификации.
type AuthHandler struct {
	auth   api.AuthUseCase
	cookie CookieOptions
}

// NewAuthHandler создает новый экземпляр обработчика аутентификации.
func NewAuthHandler(auth api.AuthUseCase, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *AuthHandler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRegister)

	var req RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, MsgInvalidRequest, zap.Error(err))
		return jsonError(ctx, fiber.StatusBadRequest, MsgInvalidRequest)
	}

	userID, err := h.auth.Register(requestCtx, req.Email, req.Password)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(RegisterResponse{UserID: userID})
}

// Login проверяет учетные данные и устанавливает cookie сессии.
func (h *AuthHandler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	var req validation.LoginInput
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, MsgInvalidRequest, zap.Error(err))
		return jsonError(ctx, fiber.StatusBadRequest, MsgInvalidRequest)
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, err)
	}

	userID, err := h.auth.Verify(requestCtx, req.Email, req.Password)
	if err != nil {
		return writeError(ctx, err)
	}

	session, err := h.auth.Login(requestCtx, userID)
	if err != nil {
		return writeError(ctx, err)
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return ctx.Status(fiber.StatusOK).JSON(LoginResponse{UserID: session.UserID, ExpiresAt: session.ExpiresAt})
}

// Logout завершает текущую сессию и очищает cookie.
func (h *AuthHandler) Logout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerLogout)

	if err := h.auth.Logout(requestCtx, middleware.SessionTokenFrom(ctx)); err != nil {
		return writeError(ctx, err)
	}

	ctx.ClearCookie(h.cookie.Name)
	return ctx.Status(fiber.StatusOK).JSON(StatusResponse{Status: "logged out"})
}

// Profile возвращает данные текущего пользователя.
func (h *AuthHandler) Profile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetProfile)

	user, err := h.auth.Profile(requestCtx, middleware.IdentityFrom(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(ProfileResponse{
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
