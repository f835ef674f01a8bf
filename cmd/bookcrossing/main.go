// Package main реализует точку входа HTTP сервиса обмена книгами.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bookcrossing/internal/bookcrossing/adapters/covers"
	httpServer "bookcrossing/internal/bookcrossing/adapters/http"
	"bookcrossing/internal/bookcrossing/adapters/postgres"
	"bookcrossing/internal/bookcrossing/adapters/services"
	"bookcrossing/internal/bookcrossing/adapters/session"
	"bookcrossing/internal/bookcrossing/app"
	"bookcrossing/internal/bookcrossing/config"
	"bookcrossing/internal/bookcrossing/db"
	"bookcrossing/pkg/db/redis"
	"bookcrossing/pkg/logger"
	"bookcrossing/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "BOOKCROSSING_LOGGER_MODE"
	EnvLoggerLevel = "BOOKCROSSING_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrInitRedis            = "failed to connect to redis"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "bookcrossing service started"
	LogServiceShutdownDone = "bookcrossing service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing Redis connection"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		database, err := db.New(ctx, &cfg.Postgres, cfg.Migrations.Dir)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		redisClient, err := redis.NewClient(ctx, cfg.Redis.ClientConfig())
		if err != nil {
			log.Error(ctx, ErrInitRedis, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(cfg.Session.SecretKey, cfg.Password.BCryptCost)
		sessionStore := session.NewRedisStore(redisClient.RawClient())
		coverStore := covers.NewFileStore(covers.Options{
			Dir:       cfg.Covers.Dir,
			MaxWidth:  cfg.Covers.MaxWidth,
			MaxHeight: cfg.Covers.MaxHeight,
			MaxBytes:  int64(cfg.HTTP.BodyLimit),
		})

		log.Info(ctx, LogInitUseCases)
		application := app.NewApplication(
			app.NewAuthUseCase(
				repoFactory.UserRepository(),
				serviceFactory.PasswordService(),
				serviceFactory.SessionTokenService(),
				sessionStore,
				cfg.Session.TTL,
			),
			app.NewBookUseCase(repoFactory.BookRepository(), coverStore),
			app.NewCustodyUseCase(repoFactory.BookRepository()),
		)

		log.Info(ctx, LogInitHTTPServer)
		server := fiber.New(fiber.Config{
			AppName:      "bookcrossing",
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit,
			ErrorHandler: httpServer.ErrorHandler,
		})

		httpServer.SetupRouter(server, application, httpServer.RouterOptions{
			Cookie: httpServer.CookieOptions{
				Name:   cfg.Session.CookieName,
				Secure: cfg.Session.CookieSecure,
			},
			HealthChecks: map[string]httpServer.HealthCheck{
				"postgres": database.Ping,
				"redis":    redisClient.Ping,
			},
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		// Хранилища закрываются только после остановки HTTP сервера.
		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				httpErr := server.ShutdownWithContext(ctx)

				log.Info(ctx, LogClosingRedis)
				redisErr := redisClient.Close()

				log.Info(ctx, LogClosingDB)
				database.Close(ctx)

				if httpErr != nil {
					return httpErr
				}
				return redisErr
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
