package logger

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxRequestIDLength - максимальная длина принимаемого извне идентификатора запроса.
const MaxRequestIDLength = 128

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// NormalizeRequestID возвращает id без пробелов по краям либо новый UUID,
// если id пуст, слишком длинный или содержит управляющие символы.
func NormalizeRequestID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > MaxRequestIDLength {
		return GenerateRequestID()
	}
	for _, r := range id {
		if r < 0x20 || r == 0x7f {
			return GenerateRequestID()
		}
	}
	return id
}

// NewRequestIDContext кладет в контекст нормализованный идентификатор запроса.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, NormalizeRequestID(requestID))
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// GenerateRequestID генерирует новый идентификатор запроса.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID возвращает логгер с полем request_id, если оно есть в контексте.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	id, ok := GetRequestID(ctx)
	if !ok {
		return l
	}
	return l.With(zap.String(RequestID, id))
}
