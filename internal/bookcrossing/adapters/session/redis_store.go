// Package session содержит хранилище серверных сессий в Redis.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bookcrossing/internal/bookcrossing/domain/services"
	ports "bookcrossing/internal/bookcrossing/ports/services"
	"bookcrossing/pkg/logger"
)

// KeyPrefix - префикс ключей сессий в Redis.
const KeyPrefix = "session:"

// Константы для логирования.
const (
	LogMethodSave   = "save"
	LogMethodLookup = "lookup"
	LogMethodDelete = "delete"

	ErrorFailedToSave   = "failed to save session in redis"
	ErrorFailedToLookup = "failed to lookup session in redis"
	ErrorFailedToDelete = "failed to delete session from redis"
)

// ErrInvalidTTL возвращается при попытке сохранить сессию без срока жизни.
var ErrInvalidTTL = errors.New("session ttl must be positive")

// RedisStore реализует SessionStore: ключ session:<sid> хранит ID пользователя.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore создает новое хранилище сессий.
func NewRedisStore(client redis.Cmdable) ports.SessionStore {
	return &RedisStore{client: client}
}

func key(sessionID string) string {
	return KeyPrefix + sessionID
}

// Save сохраняет сессию с временем жизни ttl.
func (s *RedisStore) Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSave), zap.String("userID", userID))

	if ttl <= 0 {
		return fmt.Errorf("%s: %w", ErrorFailedToSave, ErrInvalidTTL)
	}

	if err := s.client.Set(ctx, key(sessionID), userID, ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToSave, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSave, err)
	}

	return nil
}

// Lookup возвращает ID пользователя сессии.
func (s *RedisStore) Lookup(ctx context.Context, sessionID string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodLookup))

	userID, err := s.client.Get(ctx, key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", services.ErrSessionNotFound
		}
		log.Error(ctx, ErrorFailedToLookup, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorFailedToLookup, err)
	}

	return userID, nil
}

// Delete удаляет сессию. Удаление отсутствующей сессии не является ошибкой.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDelete))

	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		log.Error(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}

	return nil
}
