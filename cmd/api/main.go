package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fdg312/health-coach/internal/ai"
	"github.com/fdg312/health-coach/internal/blob"
	"github.com/fdg312/health-coach/internal/config"
	"github.com/fdg312/health-coach/internal/dbmigrate"
	"github.com/fdg312/health-coach/internal/foodfacts"
	"github.com/fdg312/health-coach/internal/httpserver"
	"github.com/fdg312/health-coach/internal/nutrition"
	"github.com/fdg312/health-coach/internal/plans"
	"github.com/fdg312/health-coach/internal/ratelimit"
)

func main() {
	cfg := config.Load()

	printStartupBanner(cfg)
	validateProductionConfig(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RunMigrationsOnStartup {
		runStartupMigrations(ctx, cfg)
	}

	logger := log.Default()

	blobStore, blobMode, err := blob.NewBlobStore(ctx, cfg.Blob, logger)
	if err != nil {
		log.Fatalf("FATAL blob: %v", err)
	}
	var archive plans.RejectArchive
	if blobStore != nil {
		archive = blob.NewArchiver(blobStore, blob.ArchivePrefix(cfg.Blob, blobMode))
	}

	foods := foodfacts.NewClient(
		cfg.FoodFactsBaseURL,
		cfg.FoodFactsUserAgent,
		time.Duration(cfg.FoodLookupTimeoutSeconds)*time.Second,
		cfg.FoodLookupPerMinute,
	)

	planService := plans.NewService(ai.NewProvider(cfg), foods, archive, plans.Options{
		Timeout: time.Duration(cfg.AITimeoutSeconds) * time.Second,
		Enrich:  cfg.MealPlanEnrichment,
	})

	var limiter ratelimit.Store
	if cfg.RateLimitPerMinute > 0 {
		limiter, err = ratelimit.NewStore(ctx, cfg, logger)
		if err != nil {
			log.Fatalf("FATAL ratelimit: %v", err)
		}
	} else {
		log.Printf("INFO ratelimit: disabled (RATE_LIMIT_PER_MINUTE=%d)", cfg.RateLimitPerMinute)
	}

	server := httpserver.New(cfg, httpserver.Deps{
		Plans:    planService,
		Analyzer: nutrition.NewAnalyzer(foods),
		Limiter:  limiter,
	})

	runErr := server.Run(ctx)
	if err := server.Close(); err != nil {
		log.Printf("WARN ratelimit: close: %v", err)
	}
	if runErr != nil {
		log.Fatalf("FATAL http: %v", runErr)
	}
	log.Printf("INFO http: stopped")
}

func runStartupMigrations(ctx context.Context, cfg *config.Config) {
	if !dbmigrate.Needed(cfg) {
		log.Printf("INFO startup migrations: skipped (RATE_LIMIT_STORE=%s keeps no state in postgres)", cfg.RateLimitStore)
		return
	}

	dbURL, source, warning, err := dbmigrate.SelectDatabaseURL(cfg, false)
	if err != nil {
		log.Fatalf("FATAL startup migrations: %v", err)
	}
	if warning != "" {
		log.Printf("WARN startup migrations: %s", warning)
	}

	log.Printf("INFO startup migrations: command=up using=%s", source)
	if err := dbmigrate.Run(ctx, "up", dbURL, ""); err != nil {
		log.Fatalf("FATAL startup migrations failed: %v", err)
	}
	log.Printf("INFO startup migrations: completed")
}

// printStartupBanner logs a one-time summary of the resolved configuration.
// Secrets are only reported as "set" / "not set".
func printStartupBanner(cfg *config.Config) {
	log.Println("====== Health & Nutrition Coach API ======")
	log.Printf("  env              = %s", cfg.Env)
	log.Printf("  port             = %d", cfg.Port)
	log.Printf("  cors_origins     = %s", describeOrigins(cfg.CORSAllowedOrigins))
	log.Printf("  cors_credentials = %t", cfg.CORSAllowCredentials)

	log.Println("---- rate limit ----")
	if cfg.RateLimitPerMinute > 0 {
		log.Printf("  limit            = %d/min per route and client", cfg.RateLimitPerMinute)
		log.Printf("  store            = %s", cfg.RateLimitStore)
		if cfg.RateLimitStore == config.RateLimitStoreRedis {
			if cfg.Redis.URL != "" {
				log.Printf("  redis            = REDIS_URL (set)")
			} else {
				log.Printf("  redis_addr       = %s", cfg.Redis.Addr)
				log.Printf("  redis_password   = %s", setOrNot(cfg.Redis.Password))
			}
		}
	} else {
		log.Printf("  limit            = disabled")
	}

	log.Println("---- database ----")
	log.Printf("  runtime_url      = %s", describeDBURL(cfg.DatabaseURL, cfg.DatabaseURLPooled))
	log.Printf("  direct           = %s", setOrNot(cfg.DatabaseURLDirect))
	log.Printf("  migrations_on_startup = %t", cfg.RunMigrationsOnStartup)

	log.Println("---- ai ----")
	log.Printf("  ai_mode          = %s", cfg.AIMode)
	log.Printf("  ai_timeout       = %ds", cfg.AITimeoutSeconds)
	log.Printf("  ai_max_tokens    = %d", cfg.AIMaxOutputTokens)
	if cfg.AIMode == config.AIModeOpenAI {
		log.Printf("  openai_model     = %s", cfg.OpenAIModel)
		log.Printf("  openai_base_url  = %s", cfg.OpenAIBaseURL)
		log.Printf("  openai_api_key   = %s", setOrNot(cfg.OpenAIAPIKey))
	}

	log.Println("---- food database ----")
	log.Printf("  base_url         = %s", cfg.FoodFactsBaseURL)
	log.Printf("  lookup_timeout   = %ds", cfg.FoodLookupTimeoutSeconds)
	if cfg.FoodLookupPerMinute > 0 {
		log.Printf("  lookup_rate      = %d/min", cfg.FoodLookupPerMinute)
	} else {
		log.Printf("  lookup_rate      = unlimited")
	}
	log.Printf("  meal_enrichment  = %t", cfg.MealPlanEnrichment)

	log.Println("---- blob ----")
	log.Printf("  blob_mode        = %s", cfg.Blob.Mode)
	switch cfg.Blob.Mode {
	case config.BlobModeLocal:
		log.Printf("  local_dir        = %s", cfg.Blob.LocalDir)
	case config.BlobModeS3, config.BlobModeAuto:
		log.Printf("  s3: %s", cfg.Blob.S3.DiagnosticsSummary())
	}

	log.Println("==========================================")
}

// validateProductionConfig performs fatal checks that only matter in non-local envs.
func validateProductionConfig(cfg *config.Config) {
	isProd := cfg.Env == "production" || cfg.Env == "staging"

	if cfg.Blob.Mode == config.BlobModeS3 {
		if missing := cfg.Blob.S3.MissingRequired(); len(missing) > 0 {
			log.Fatalf("FATAL blob: BLOB_MODE is 's3' but S3 config is incomplete, missing: %s", strings.Join(missing, ", "))
		}
	}

	if isProd && cfg.CORSAllowCredentials && slices.Contains(cfg.CORSAllowedOrigins, "*") {
		log.Fatalf("FATAL cors: wildcard origin with credentials is not allowed in %s", cfg.Env)
	}

	if isProd && cfg.AIMode == config.AIModeMock {
		log.Printf("WARN ai: AI_MODE=mock in %s, plans are canned demo output", cfg.Env)
	}

	if isProd && cfg.RateLimitPerMinute > 0 && cfg.RateLimitStore == config.RateLimitStoreMemory {
		log.Printf("WARN ratelimit: memory store in %s is per instance", cfg.Env)
	}
}

// ---- helpers (no secrets) ----

func setOrNot(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not set"
	}
	return "set"
}

func describeOrigins(origins []string) string {
	if len(origins) == 0 {
		return "none (cross-origin requests denied)"
	}
	return strings.Join(origins, ", ")
}

func describeDBURL(runtime, pooled string) string {
	if runtime == "" {
		return "not set"
	}
	if pooled != "" && runtime == pooled {
		return "set (via DATABASE_URL_POOLED)"
	}
	return "set"
}
