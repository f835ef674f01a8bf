package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bookcrossing/internal/bookcrossing/adapters/covers"
	"bookcrossing/internal/bookcrossing/adapters/http/middleware"
	"bookcrossing/internal/bookcrossing/app/validation"
	"bookcrossing/internal/bookcrossing/domain/entities"
	"bookcrossing/internal/bookcrossing/domain/services"
	"bookcrossing/pkg/logger"
)

// Сообщения об ошибках для клиента. Идентификаторы и детали хранилища в них не попадают.
const (
	MsgInvalidRequest     = "invalid request"
	MsgValidationFailed   = "validation failed"
	MsgEmailRegistered    = "email already registered"
	MsgInvalidCredentials = "invalid credentials"
	MsgPasswordRejected   = "does not meet password requirements"
	MsgBookNotFound       = "book not found"
	MsgUserNotFound       = "user not found"
	MsgBookUnavailable    = "book is unavailable or belongs to you"
	MsgCoverTooLarge      = "cover file is too large"
	MsgInternalError      = "internal server error"
	MsgRouteNotFound      = "route not found"
)

// writeError переводит ошибку сценария в HTTP ответ.
func writeError(ctx fiber.Ctx, err error) error {
	var verrs validation.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  MsgValidationFailed,
			"fields": verrs,
		})
	case errors.Is(err, services.ErrInvalidPassword):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  MsgValidationFailed,
			"fields": validation.ValidationErrors{"password": MsgPasswordRejected},
		})
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return jsonError(ctx, fiber.StatusConflict, MsgEmailRegistered)
	case errors.Is(err, services.ErrInvalidCredentials):
		return jsonError(ctx, fiber.StatusUnauthorized, MsgInvalidCredentials)
	case errors.Is(err, services.ErrUnauthenticated):
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":     middleware.ErrorAuthRequired,
			"login_url": middleware.LoginURL,
		})
	case errors.Is(err, entities.ErrBookNotFound):
		return jsonError(ctx, fiber.StatusNotFound, MsgBookNotFound)
	case errors.Is(err, entities.ErrUserNotFound):
		return jsonError(ctx, fiber.StatusNotFound, MsgUserNotFound)
	case errors.Is(err, entities.ErrAlreadyTaken), errors.Is(err, entities.ErrSelfTake):
		return jsonError(ctx, fiber.StatusConflict, MsgBookUnavailable)
	case errors.Is(err, covers.ErrCoverTooLarge):
		return jsonError(ctx, fiber.StatusRequestEntityTooLarge, MsgCoverTooLarge)
	default:
		requestCtx := ctx.Context()
		logger.Log(requestCtx).Error(requestCtx, MsgInternalError, zap.Error(err))
		return jsonError(ctx, fiber.StatusInternalServerError, MsgInternalError)
	}
}

func jsonError(ctx fiber.Ctx, status int, message string) error {
	return ctx.Status(status).JSON(fiber.Map{"error": message})
}

// ErrorHandler отвечает JSON на ошибки, которые дошли до fiber.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		message := fiberErr.Message
		if fiberErr.Code >= fiber.StatusInternalServerError {
			message = MsgInternalError
		}
		return jsonError(ctx, fiberErr.Code, message)
	}
	return writeError(ctx, err)
}
