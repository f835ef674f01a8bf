// Package main реализует административную утилиту сервиса обмена книгами.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"bookcrossing/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "BOOKCROSSING_LOGGER_MODE"
	EnvLoggerLevel = "BOOKCROSSING_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger = "failed to initialize logger"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	level := os.Getenv(EnvLoggerLevel)
	if level == "" {
		level = "warn"
	}

	log, err := logger.NewLogger(env, level)
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	err = newRootCmd().ExecuteContext(ctx)
	_ = log.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
