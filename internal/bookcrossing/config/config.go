// Package config содержит конфигурацию сервиса обмена книгами.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"bookcrossing/pkg/logger"
)

// Константы сообщений конфигурации.
const (
	LogLoadingConfig    = "Loading bookcrossing service configuration"
	LogConfigLoaded     = "Configuration loaded successfully"
	ErrFailedLoadConfig = "Failed to load configuration"
	LogDefaultSecret    = "session secret key is not set, using the development default"
)

// ErrDefaultSessionSecret возвращается в production режиме, если ключ подписи сессий не задан.
var ErrDefaultSessionSecret = errors.New("BOOKCROSSING_SESSION_SECRET_KEY must be set in production")

// Config представляет полную конфигурацию приложения.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Redis      RedisConfig      `yaml:"redis"`
	Session    SessionConfig    `yaml:"session"`
	Password   PasswordConfig   `yaml:"password"`
	Covers     CoversConfig     `yaml:"covers"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Logging    LoggingConfig    `yaml:"logging"`
	Shutdown   ShutdownConfig   `yaml:"shutdown"`
}

// Load загружает конфигурацию из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogLoadingConfig)

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if cfg.Session.UsesDefaultSecret() {
		if cfg.Logging.GetEnvironment() == logger.Production {
			log.Error(ctx, ErrFailedLoadConfig, zap.Error(ErrDefaultSessionSecret))
			return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, ErrDefaultSessionSecret)
		}
		log.Warn(ctx, LogDefaultSecret)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.Duration("session_ttl", cfg.Session.TTL),
		zap.String("covers_dir", cfg.Covers.Dir),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return &cfg, nil
}
