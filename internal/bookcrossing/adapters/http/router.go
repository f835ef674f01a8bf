// Package http содержит HTTP слой сервиса поверх fiber.
package http

import (
	"github.com/gofiber/fiber/v3"

	"bookcrossing/internal/bookcrossing/adapters/http/middleware"
	"bookcrossing/internal/bookcrossing/app"
)

// RouterOptions задает параметры маршрутизации.
type RouterOptions struct {
	Cookie       CookieOptions
	HealthChecks map[string]HealthCheck
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(router *fiber.App, application *app.Application, opts RouterOptions) {
	authHandler := NewAuthHandler(application.Auth, opts.Cookie)
	bookHandler := NewBookHandler(application.Books, application.Custody)
	requireAuth := middleware.RequireAuth()

	// Middleware для всех запросов.
	router.Use(middleware.NewRequestIDMiddleware())
	router.Use(middleware.NewLoggerMiddleware())
	router.Use(middleware.NewRecoveryMiddleware())
	router.Use(middleware.NewSessionMiddleware(application.Auth, opts.Cookie.Name))

	router.Get("/healthz", NewHealthHandler(opts.HealthChecks))

	apiV1 := router.Group("/api/v1")

	// Защищенные маршруты: fiber выполняет middleware маршрута до его обработчика,
	// поэтому requireAuth передается после обработчика.
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout, requireAuth)
	authRoutes.Get("/me", authHandler.Profile, requireAuth)

	bookRoutes := apiV1.Group("/books")
	bookRoutes.Get("/", bookHandler.ListAvailable)
	bookRoutes.Post("/", bookHandler.Add, requireAuth)
	bookRoutes.Get("/:id", bookHandler.Get)
	bookRoutes.Post("/:id/take", bookHandler.Take, requireAuth)

	apiV1.Get("/dashboard", bookHandler.Dashboard, requireAuth)

	// Обработчик для несуществующих маршрутов.
	router.Use(func(ctx fiber.Ctx) error {
		return jsonError(ctx, fiber.StatusNotFound, MsgRouteNotFound)
	})
}
