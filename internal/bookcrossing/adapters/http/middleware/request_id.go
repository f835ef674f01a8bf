// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"bookcrossing/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware берет идентификатор запроса из заголовка или генерирует новый
// и кладет его в контекст запроса для логгера.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := logger.NormalizeRequestID(ctx.Get(HeaderRequestID))

		ctx.Set(HeaderRequestID, requestID)
		ctx.SetContext(logger.NewRequestIDContext(ctx.Context(), requestID))

		return ctx.Next()
	}
}
