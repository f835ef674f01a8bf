package postgres

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // драйвер migrate для postgres://
	_ "github.com/golang-migrate/migrate/v4/source/file"       // источник file://
	"go.uber.org/zap"

	"bookcrossing/pkg/logger"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrRollbackMigrations      = "failed to roll back migrations"
	ErrResolveMigrationsPath   = "failed to resolve migrations path"
)

// SourceURL превращает каталог миграций в URL источника file://.
func SourceURL(dir string) (string, error) {
	if strings.HasPrefix(dir, "file://") {
		return dir, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrResolveMigrationsPath, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// MigrateDSN применяет все миграции из каталога migrationsDir.
func MigrateDSN(ctx context.Context, dsn string, migrationsDir string) error {
	log := logger.Log(ctx)

	m, err := newMigrate(dsn, migrationsDir)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err), zap.String("path", migrationsDir))
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	log.Info(ctx, LogMigrationsApplied)
	return nil
}

// RollbackDSN откатывает steps последних миграций.
func RollbackDSN(ctx context.Context, dsn string, migrationsDir string, steps int) error {
	log := logger.Log(ctx)

	m, err := newMigrate(dsn, migrationsDir)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err), zap.String("path", migrationsDir))
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, ErrRollbackMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrRollbackMigrations, err)
	}

	log.Info(ctx, LogMigrationsRolled, zap.Int("steps", steps))
	return nil
}

func newMigrate(dsn, migrationsDir string) (*migrate.Migrate, error) {
	sourceURL, err := SourceURL(migrationsDir)
	if err != nil {
		return nil, err
	}

	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	return m, nil
}
