package config

import "time"

// DefaultSessionSecret - ключ подписи по умолчанию, пригодный только для разработки.
const DefaultSessionSecret = "change-me-in-production"

// SessionConfig содержит настройки сессий и cookie.
type SessionConfig struct {
	SecretKey    string        `yaml:"secret_key" env:"BOOKCROSSING_SESSION_SECRET_KEY" env-default:"change-me-in-production"`
	TTL          time.Duration `yaml:"ttl" env:"BOOKCROSSING_SESSION_TTL" env-default:"168h"`
	CookieName   string        `yaml:"cookie_name" env:"BOOKCROSSING_SESSION_COOKIE_NAME" env-default:"bookcrossing_session"`
	CookieSecure bool          `yaml:"cookie_secure" env:"BOOKCROSSING_SESSION_COOKIE_SECURE" env-default:"false"`
}

// UsesDefaultSecret сообщает, что ключ подписи не задан явно.
func (s *SessionConfig) UsesDefaultSecret() bool {
	return s.SecretKey == "" || s.SecretKey == DefaultSessionSecret
}

// PasswordConfig содержит настройки хэширования паролей.
type PasswordConfig struct {
	BCryptCost int `yaml:"bcrypt_cost" env:"BOOKCROSSING_BCRYPT_COST" env-default:"10"`
}
