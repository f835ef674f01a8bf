package redis

import (
	"fmt"
	"time"
)

// Значения по умолчанию.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 6379
	DefaultPoolSize = 10
	DefaultTimeout  = 3 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host           string
	Port           int
	Password       string
	DB             int
	PoolSize       int
	MinIdle        int
	ConnectTimeout time.Duration
	Timeout        time.Duration
}

// DefaultConfig возвращает конфигурацию Redis по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		PoolSize:       DefaultPoolSize,
		ConnectTimeout: DefaultTimeout,
		Timeout:        DefaultTimeout,
	}
}

// Address возвращает адрес в виде host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
