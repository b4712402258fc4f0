package dbmigrate

import (
	"errors"
	"fmt"

	"github.com/fdg312/health-coach/internal/config"
)

// ErrNoDatabaseURL is returned when no usable connection string is configured.
var ErrNoDatabaseURL = errors.New("no database URL configured (set DATABASE_URL_DIRECT or DATABASE_URL)")

// SelectDatabaseURL selects DB URL for migrations.
// Priority: DIRECT > DATABASE_URL > POOLED (with warning).
// If requireDirect is true, only DATABASE_URL_DIRECT is accepted.
func SelectDatabaseURL(cfg *config.Config, requireDirect bool) (dbURL string, source string, warning string, err error) {
	if requireDirect {
		if cfg.DatabaseURLDirect == "" {
			return "", "", "", fmt.Errorf("DATABASE_URL_DIRECT is required for DDL/migrations: %w", ErrNoDatabaseURL)
		}
		return cfg.DatabaseURLDirect, "DATABASE_URL_DIRECT", "", nil
	}

	if cfg.DatabaseURLDirect != "" {
		return cfg.DatabaseURLDirect, "DATABASE_URL_DIRECT", "", nil
	}
	if cfg.DatabaseURLRaw != "" {
		return cfg.DatabaseURLRaw, "DATABASE_URL", "", nil
	}
	if cfg.DatabaseURLPooled != "" {
		return cfg.DatabaseURLPooled, "DATABASE_URL_POOLED", "pooled connections can break DDL; set DATABASE_URL_DIRECT", nil
	}

	return "", "", "", ErrNoDatabaseURL
}
