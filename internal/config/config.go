package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Table   TableConfig   `yaml:"table"`
	Search  SearchConfig  `yaml:"search"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Addr returns host:port for net.Listen.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Reference table sources.
const (
	SourceEmbedded = "embedded"
	SourceBlob     = "blob"
	SourceSQLite   = "sqlite"
)

// TableConfig selects where the reference table is read from.
// Path is required for the blob and sqlite sources.
type TableConfig struct {
	Source string `yaml:"source" env:"TABLE_SOURCE" env-default:"embedded"`
	Path   string `yaml:"path"   env:"TABLE_PATH"`
}

// SearchConfig holds defaults applied to searches that do not set them.
type SearchConfig struct {
	RadiationType string `yaml:"radiation_type" env:"SEARCH_RADIATION_TYPE" env-default:"gamma"`
	PrintMode     string `yaml:"print_mode"     env:"SEARCH_PRINT_MODE"     env-default:"everything"`
	Parallel      bool   `yaml:"parallel"       env:"SEARCH_PARALLEL"       env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// MetricsConfig toggles the Prometheus endpoint. The zero value serves it;
// cleanenv re-applies env-default to false booleans, so the flag is negative.
type MetricsConfig struct {
	Disabled bool `yaml:"disabled" env:"METRICS_DISABLED"`
}
