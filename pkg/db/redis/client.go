// Package redis предоставляет общую реализацию клиента Redis.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bookcrossing/pkg/logger"
)

const (
	logConnecting = "connecting to Redis"
	logConnected  = "successfully connected to Redis"

	errConnect = "failed to connect to Redis"
	errClose   = "failed to close Redis connection"
)

// Client обертывает клиент Redis.
type Client struct {
	client *redis.Client
}

// NewClient создает клиент и проверяет соединение командой PING.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	log := logger.Log(ctx)
	log.Info(ctx, logConnecting, zap.String("address", cfg.Address()), zap.Int("db", cfg.DB))

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdle,
		DialTimeout:  cfg.ConnectTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		log.Error(ctx, errConnect, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errConnect, err)
	}

	log.Info(ctx, logConnected)
	return &Client{client: rdb}, nil
}

// Ping проверяет доступность Redis.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%s: %w", errConnect, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (c *Client) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", errClose, err)
	}
	return nil
}

// RawClient возвращает базовый клиент для адаптеров, которым нужны команды сверх Ping.
func (c *Client) RawClient() *redis.Client {
	return c.client
}
