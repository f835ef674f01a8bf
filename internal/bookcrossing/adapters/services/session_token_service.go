package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"bookcrossing/internal/bookcrossing/domain/services"
	svc "bookcrossing/internal/bookcrossing/ports/services"
	"bookcrossing/pkg/logger"
)

const (
	methodSign             = "Sign"
	methodParse            = "Parse"
	msgSigningSessionToken = "signing session token"
	msgSessionTokenSigned  = "session token signed"
	msgParsingSessionToken = "parsing session token"
	msgSessionTokenExpired = "session token has expired"
	msgInvalidSessionToken = "invalid session token"
	//nolint:gosec
	errSigningToken     = "error signing session token"
	errCtxSigningToken  = "signing session token"
	errCtxParsingToken  = "parsing session token"
	errCtxValidateToken = "validating session token"
)

// sessionClaims - представление SessionClaims в формате библиотеки JWT.
// sub несет ID пользователя, jti - ID серверной сессии.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// ServiceSessionToken подписывает токены сессии по HS256.
type ServiceSessionToken struct {
	secretKey []byte
}

// NewSessionToken создает новый экземпляр сервиса токенов сессии.
func NewSessionToken(secretKey string) svc.SessionTokenService {
	return &ServiceSessionToken{secretKey: []byte(secretKey)}
}

// Sign подписывает claims и возвращает компактную строку токена.
func (s *ServiceSessionToken) Sign(ctx context.Context, claims services.SessionClaims) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSign), zap.String("userID", claims.UserID))
	log.Debug(ctx, msgSigningSessionToken)

	if len(s.secretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return "", fmt.Errorf("%s: %w: empty secret key", errCtxSigningToken, services.ErrSigningSession)
	}

	if claims.UserID == "" || claims.SessionID == "" {
		return "", fmt.Errorf("%s: %w: empty subject or session id", errCtxSigningToken, services.ErrSigningSession)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			ID:        claims.SessionID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errCtxSigningToken, services.ErrSigningSession, err)
	}

	log.Debug(ctx, msgSessionTokenSigned, zap.Time("expiresAt", claims.ExpiresAt))
	return tokenString, nil
}

// Parse проверяет подпись и срок действия токена.
func (s *ServiceSessionToken) Parse(ctx context.Context, tokenString string) (*services.SessionClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodParse))
	log.Debug(ctx, msgParsingSessionToken)

	if tokenString == "" {
		return nil, fmt.Errorf("%s: %w: empty token", errCtxValidateToken, services.ErrInvalidSessionToken)
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgSessionTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidateToken, services.ErrExpiredSessionToken)
		}
		log.Debug(ctx, msgInvalidSessionToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsingToken, services.ErrInvalidSessionToken, err)
	}

	if !token.Valid || claims.Subject == "" || claims.ID == "" {
		log.Debug(ctx, msgInvalidSessionToken)
		return nil, fmt.Errorf("%s: %w", errCtxValidateToken, services.ErrInvalidSessionToken)
	}

	result := &services.SessionClaims{
		UserID:    claims.Subject,
		SessionID: claims.ID,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}

	return result, nil
}

