package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bookcrossing/pkg/logger"
)

const healthTimeout = 2 * time.Second

// HealthCheck проверяет доступность одной зависимости.
type HealthCheck func(ctx context.Context) error

// NewHealthHandler отвечает 200, если все проверки прошли, и 503 иначе.
func NewHealthHandler(checks map[string]HealthCheck) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx, cancel := context.WithTimeout(ctx.Context(), healthTimeout)
		defer cancel()

		results := make(map[string]string, len(checks))
		healthy := true
		for name, check := range checks {
			if err := check(requestCtx); err != nil {
				logger.Log(requestCtx).Warn(requestCtx, "health check failed", zap.String("check", name), zap.Error(err))
				results[name] = "down"
				healthy = false
				continue
			}
			results[name] = "up"
		}

		status, code := "ok", fiber.StatusOK
		if !healthy {
			status, code = "unavailable", fiber.StatusServiceUnavailable
		}
		return ctx.Status(code).JSON(fiber.Map{"status": status, "checks": results})
	}
}
