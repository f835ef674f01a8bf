package config

import "bookcrossing/pkg/logger"

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"BOOKCROSSING_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"BOOKCROSSING_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment переводит строку режима в logger.Environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}
