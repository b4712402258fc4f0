package dbmigrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"

	"github.com/pressly/goose/v3"

	"github.com/fdg312/health-coach/internal/config"
	"github.com/fdg312/health-coach/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Commands lists the goose commands the migrate binary accepts.
var Commands = []string{"up", "status", "down", "version"}

// Run applies command against dbURL. An empty migrationsDir uses the
// migrations embedded in the binary.
func Run(ctx context.Context, command string, dbURL string, migrationsDir string) error {
	if dbURL == "" {
		return fmt.Errorf("database URL is empty")
	}

	var fsys fs.FS = migrations.FS
	if migrationsDir != "" {
		fsys = os.DirFS(migrationsDir)
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, "."); err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}

	return nil
}

// Needed reports whether the configured backends keep state in Postgres.
func Needed(cfg *config.Config) bool {
	return cfg.RateLimitPerMinute > 0 && cfg.RateLimitStore == config.RateLimitStorePostgres
}
