package config

import (
	"fmt"
	"strings"

	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 0..65535 (got %d)", c.Server.Port)
	}

	if err := c.Table.validate(); err != nil {
		return fmt.Errorf("table: %w", err)
	}

	if _, err := entities.ParseRadiationType(c.Search.RadiationType); err != nil {
		return fmt.Errorf("search.radiation_type: %w", err)
	}
	if _, err := entities.ParsePrintMode(c.Search.PrintMode); err != nil {
		return fmt.Errorf("search.print_mode: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}

	return nil
}

func (t *TableConfig) validate() error {
	t.Source = strings.ToLower(strings.TrimSpace(t.Source))
	switch t.Source {
	case SourceEmbedded:
		return nil
	case SourceBlob, SourceSQLite:
		if strings.TrimSpace(t.Path) == "" {
			return fmt.Errorf("path is required for source %q", t.Source)
		}
		return nil
	default:
		return fmt.Errorf("unknown source %q (want embedded, blob or sqlite)", t.Source)
	}
}
