package config

import (
	"fmt"
	"time"

	"bookcrossing/pkg/db/redis"
)

// RedisConfig представляет конфигурацию Redis, в котором хранятся сессии.
type RedisConfig struct {
	Host           string        `yaml:"host" env:"BOOKCROSSING_REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"BOOKCROSSING_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"BOOKCROSSING_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"BOOKCROSSING_REDIS_DB" env-default:"0"`
	PoolSize       int           `yaml:"pool_size" env:"BOOKCROSSING_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle        int           `yaml:"min_idle" env:"BOOKCROSSING_REDIS_MIN_IDLE" env-default:"2"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"BOOKCROSSING_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	Timeout        time.Duration `yaml:"timeout" env:"BOOKCROSSING_REDIS_TIMEOUT" env-default:"3s"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ClientConfig преобразует настройки в конфигурацию общего клиента.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:           c.Host,
		Port:           c.Port,
		Password:       c.Password,
		DB:             c.DB,
		PoolSize:       c.PoolSize,
		MinIdle:        c.MinIdle,
		ConnectTimeout: c.ConnectTimeout,
		Timeout:        c.Timeout,
	}
}
