package config

// CoversConfig содержит настройки хранения обложек.
type CoversConfig struct {
	Dir       string `yaml:"dir" env:"BOOKCROSSING_COVERS_DIR" env-default:"var/covers"`
	MaxWidth  int    `yaml:"max_width" env:"BOOKCROSSING_COVERS_MAX_WIDTH" env-default:"600"`
	MaxHeight int    `yaml:"max_height" env:"BOOKCROSSING_COVERS_MAX_HEIGHT" env-default:"900"`
}
