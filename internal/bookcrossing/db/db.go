// Package db поднимает базу данных сервиса: применяет миграции и открывает пул.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"bookcrossing/internal/bookcrossing/config"
	"bookcrossing/pkg/db/postgres"
	"bookcrossing/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing bookcrossing database"
	LogDBInitialized     = "bookcrossing database initialized successfully"
	LogMigrationStarting = "starting database migrations"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply bookcrossing database migrations"
	ErrDBConnection = "failed to connect to bookcrossing database"
)

// DB представляет соединение с базой данных сервиса.
type DB struct {
	database *postgres.Database
}

// New применяет миграции из migrationsDir и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig, migrationsDir string) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_dir", migrationsDir))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsDir); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, cfg.Options())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
