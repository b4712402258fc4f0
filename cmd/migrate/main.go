package main

import (
	"context"
	"flag"
	"log"
	"slices"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fdg312/health-coach/internal/config"
	"github.com/fdg312/health-coach/internal/dbmigrate"
)

func main() {
	dir := flag.String("dir", "", "migrations directory (default: embedded migrations)")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatalf("usage: go run ./cmd/migrate [-dir migrations] [%s]", strings.Join(dbmigrate.Commands, "|"))
	}

	command := flag.Arg(0)
	if !slices.Contains(dbmigrate.Commands, command) {
		log.Fatalf("unsupported command %q (allowed: %s)", command, strings.Join(dbmigrate.Commands, ", "))
	}

	cfg := config.Load()
	dbURL, source, warning, err := dbmigrate.SelectDatabaseURL(cfg, false)
	if err != nil {
		log.Fatal(err)
	}

	if warning != "" {
		log.Printf("WARN migrate: %s", warning)
	}
	log.Printf("INFO migrate: command=%s using=%s", command, source)

	if err := dbmigrate.Run(context.Background(), command, dbURL, *dir); err != nil {
		log.Fatal(err)
	}

	log.Printf("INFO migrate: %s completed successfully", command)
}
