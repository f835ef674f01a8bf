package config

import (
	"fmt"
	"net/url"
	"time"

	"bookcrossing/pkg/db/postgres"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host            string        `yaml:"host" env:"BOOKCROSSING_POSTGRES_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"BOOKCROSSING_POSTGRES_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"BOOKCROSSING_POSTGRES_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"BOOKCROSSING_POSTGRES_PASSWORD" env-default:"postgres"`
	Database        string        `yaml:"database" env:"BOOKCROSSING_POSTGRES_DB" env-default:"bookcrossing"`
	MinConn         int           `yaml:"min_conn" env:"BOOKCROSSING_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn         int           `yaml:"max_conn" env:"BOOKCROSSING_POSTGRES_MAX_CONN" env-default:"10"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"BOOKCROSSING_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     p.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Options возвращает параметры пула соединений.
func (p *PostgresConfig) Options() postgres.Options {
	return postgres.Options{
		DSN:             p.GetDSN(),
		MinConn:         p.MinConn,
		MaxConn:         p.MaxConn,
		MaxConnLifetime: p.MaxConnLifetime,
	}
}

// MigrationsConfig указывает каталог SQL-миграций.
type MigrationsConfig struct {
	Dir string `yaml:"dir" env:"BOOKCROSSING_MIGRATIONS_DIR" env-default:"migrations/bookcrossing"`
}
