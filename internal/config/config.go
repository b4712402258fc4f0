package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	BlobModeOff   = "off"
	BlobModeLocal = "local"
	BlobModeS3    = "s3"
	BlobModeAuto  = "auto"
)

const (
	RateLimitStoreMemory   = "memory"
	RateLimitStoreRedis    = "redis"
	RateLimitStorePostgres = "postgres"
)

const (
	AIModeMock   = "mock"
	AIModeOpenAI = "openai"
)

// S3Config describes the bucket that receives rejected generation output.
// Endpoint is optional: empty means the default AWS endpoint for Region.
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
}

func (c S3Config) MissingRequired() []string {
	missing := make([]string, 0, 4)
	if strings.TrimSpace(c.Region) == "" {
		missing = append(missing, "S3_REGION")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		missing = append(missing, "S3_BUCKET")
	}
	if strings.TrimSpace(c.AccessKeyID) == "" {
		missing = append(missing, "S3_ACCESS_KEY_ID")
	}
	if strings.TrimSpace(c.SecretAccessKey) == "" {
		missing = append(missing, "S3_SECRET_ACCESS_KEY")
	}
	return missing
}

func (c S3Config) IsConfigured() bool {
	return len(c.MissingRequired()) == 0
}

func (c S3Config) Diagnostics() (level string, code string, msg string) {
	allEmpty := strings.TrimSpace(c.Endpoint) == "" &&
		strings.TrimSpace(c.Region) == "" &&
		strings.TrimSpace(c.Bucket) == "" &&
		strings.TrimSpace(c.AccessKeyID) == "" &&
		strings.TrimSpace(c.SecretAccessKey) == ""

	if allEmpty {
		return "INFO", "s3_not_configured", "not configured (all empty)"
	}

	missing := c.MissingRequired()
	if len(missing) > 0 {
		return "WARN", "s3_partial_config", fmt.Sprintf("partial config, missing=%v", missing)
	}

	return "INFO", "s3_ready", "ready"
}

// DiagnosticsSummary returns a detailed summary for logging (no secrets)
func (c S3Config) DiagnosticsSummary() string {
	return fmt.Sprintf("endpoint=%s region=%s bucket=%s prefix=%s access_key_id=%s secret_access_key=%s",
		nonEmptyOrDash(c.Endpoint),
		nonEmptyOrDash(c.Region),
		nonEmptyOrDash(c.Bucket),
		nonEmptyOrDash(c.Prefix),
		setOrNot(c.AccessKeyID),
		setOrNot(c.SecretAccessKey),
	)
}

type BlobConfig struct {
	Mode     string // off|local|s3|auto
	LocalDir string
	S3       S3Config
}

// RedisConfig holds connection parameters for the redis rate limit store.
// URL wins over the discrete fields when set.
type RedisConfig struct {
	URL      string
	Addr     string
	Password string
	DB       int
}

// Config holds the application configuration.
type Config struct {
	Env  string // local | staging | production
	Port int

	// Database (postgres rate limit store)
	DatabaseURL       string
	DatabaseURLRaw    string
	DatabaseURLPooled string
	DatabaseURLDirect string

	// CORS
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// Rate Limiting
	RateLimitPerMinute int
	RateLimitStore     string
	Redis              RedisConfig

	// Rejected generation output archive
	Blob BlobConfig

	// AI
	AIMode            string
	AIMaxOutputTokens int
	AITemperature     float64
	AITimeoutSeconds  int
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIBaseURL     string

	// Food database
	FoodFactsBaseURL         string
	FoodFactsUserAgent       string
	FoodLookupTimeoutSeconds int
	FoodLookupPerMinute      int
	MealPlanEnrichment       bool

	// Migrations
	RunMigrationsOnStartup bool
}

// Load reads the configuration from environment variables.
func Load() *Config {
	// APP_ENV (fallback to ENV, default: local)
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = os.Getenv("ENV")
	}
	if env == "" {
		env = "local"
	}

	// PORT (default: 8000)
	port := envInt("PORT", 8000)
	if port <= 0 {
		port = 8000
	}

	// ---------- Database ----------
	// Priority: DATABASE_URL_POOLED > DATABASE_URL > DATABASE_URL_DIRECT
	dbPooled := strings.TrimSpace(os.Getenv("DATABASE_URL_POOLED"))
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	dbDirect := strings.TrimSpace(os.Getenv("DATABASE_URL_DIRECT"))

	runtimeDB := dbPooled
	if runtimeDB == "" {
		runtimeDB = dbURL
	}
	if runtimeDB == "" {
		runtimeDB = dbDirect
	}

	runMigrationsOnStartup := parseBoolEnv("RUN_MIGRATIONS_ON_STARTUP")

	// ---------- CORS ----------
	rawOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if strings.TrimSpace(rawOrigins) == "" {
		rawOrigins = os.Getenv("ALLOWED_ORIGINS")
	}
	corsOrigins := parseCORSOrigins(rawOrigins, env)
	corsAllowCreds := envBool("CORS_ALLOW_CREDENTIALS", true)

	// ---------- Rate Limiting ----------
	rateLimitPerMinute := envInt("RATE_LIMIT_PER_MINUTE", 10)

	rateLimitStore := strings.ToLower(strings.TrimSpace(os.Getenv("RATE_LIMIT_STORE")))
	if rateLimitStore == "" {
		rateLimitStore = RateLimitStoreMemory
	}
	switch rateLimitStore {
	case RateLimitStoreMemory, RateLimitStoreRedis, RateLimitStorePostgres:
	default:
		log.Printf("WARNING: unknown RATE_LIMIT_STORE=%q, fallback to %s", rateLimitStore, RateLimitStoreMemory)
		rateLimitStore = RateLimitStoreMemory
	}
	if rateLimitStore == RateLimitStorePostgres && runtimeDB == "" {
		log.Fatal("DATABASE_URL is required when RATE_LIMIT_STORE=postgres")
	}

	redisAddr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if redisAddr == "" {
		host := strings.TrimSpace(os.Getenv("REDIS_HOST"))
		if host == "" {
			host = "localhost"
		}
		redisPort := strings.TrimSpace(os.Getenv("REDIS_PORT"))
		if redisPort == "" {
			redisPort = "6379"
		}
		redisAddr = host + ":" + redisPort
	}
	redisCfg := RedisConfig{
		URL:      strings.TrimSpace(os.Getenv("REDIS_URL")),
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       envInt("REDIS_DB", 0),
	}

	// ---------- Blob / S3 ----------
	blobMode := parseBlobMode("BLOB_MODE", BlobModeOff)
	blobLocalDir := strings.TrimSpace(os.Getenv("BLOB_LOCAL_DIR"))
	if blobLocalDir == "" {
		blobLocalDir = "data/rejected"
	}
	s3Prefix := strings.Trim(strings.TrimSpace(os.Getenv("S3_PREFIX")), "/")
	if s3Prefix == "" {
		s3Prefix = "rejected"
	}
	blobCfg := BlobConfig{
		Mode:     blobMode,
		LocalDir: blobLocalDir,
		S3: S3Config{
			Endpoint:        strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
			Region:          strings.TrimSpace(os.Getenv("S3_REGION")),
			Bucket:          strings.TrimSpace(os.Getenv("S3_BUCKET")),
			AccessKeyID:     strings.TrimSpace(os.Getenv("S3_ACCESS_KEY_ID")),
			SecretAccessKey: strings.TrimSpace(os.Getenv("S3_SECRET_ACCESS_KEY")),
			Prefix:          s3Prefix,
		},
	}

	// ---------- AI ----------
	aiMode := strings.ToLower(strings.TrimSpace(os.Getenv("AI_MODE")))
	if aiMode == "" {
		aiMode = AIModeMock
	}
	if aiMode != AIModeMock && aiMode != AIModeOpenAI {
		log.Printf("WARNING: unknown AI_MODE=%q, fallback to mock", aiMode)
		aiMode = AIModeMock
	}

	// A full week of meals with nutrients does not fit in a small budget.
	aiMaxOutputTokens := envInt("AI_MAX_OUTPUT_TOKENS", 4000)
	if aiMaxOutputTokens <= 0 {
		aiMaxOutputTokens = 4000
	}

	aiTemperature := envFloat("AI_TEMPERATURE", 0.7)
	if aiTemperature < 0 {
		aiTemperature = 0
	}
	if aiTemperature > 2 {
		aiTemperature = 2
	}

	aiTimeoutSeconds := envInt("AI_TIMEOUT_SECONDS", 30)
	if aiTimeoutSeconds <= 0 {
		aiTimeoutSeconds = 30
	}

	openAIAPIKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	openAIModel := strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if openAIModel == "" {
		openAIModel = "gpt-4.1-mini"
	}
	openAIBaseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")), "/")
	if openAIBaseURL == "" {
		openAIBaseURL = "https://api.openai.com/v1"
	}

	if aiMode == AIModeOpenAI && openAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY is required when AI_MODE=openai")
	}

	// ---------- Food database ----------
	foodFactsBaseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("OPENFOODFACTS_BASE_URL")), "/")
	if foodFactsBaseURL == "" {
		foodFactsBaseURL = "https://world.openfoodfacts.org"
	}
	foodFactsUserAgent := strings.TrimSpace(os.Getenv("OPENFOODFACTS_USER_AGENT"))
	if foodFactsUserAgent == "" {
		foodFactsUserAgent = "HealthNutritionAPI - Go"
	}
	foodLookupTimeout := envInt("FOOD_LOOKUP_TIMEOUT_SECONDS", 10)
	if foodLookupTimeout <= 0 {
		foodLookupTimeout = 10
	}

	return &Config{
		Env:  env,
		Port: port,

		DatabaseURL:       runtimeDB,
		DatabaseURLRaw:    dbURL,
		DatabaseURLPooled: dbPooled,
		DatabaseURLDirect: dbDirect,

		CORSAllowedOrigins:   corsOrigins,
		CORSAllowCredentials: corsAllowCreds,

		RateLimitPerMinute: rateLimitPerMinute,
		RateLimitStore:     rateLimitStore,
		Redis:              redisCfg,

		Blob: blobCfg,

		AIMode:            aiMode,
		AIMaxOutputTokens: aiMaxOutputTokens,
		AITemperature:     aiTemperature,
		AITimeoutSeconds:  aiTimeoutSeconds,
		OpenAIAPIKey:      openAIAPIKey,
		OpenAIModel:       openAIModel,
		OpenAIBaseURL:     openAIBaseURL,

		FoodFactsBaseURL:         foodFactsBaseURL,
		FoodFactsUserAgent:       foodFactsUserAgent,
		FoodLookupTimeoutSeconds: foodLookupTimeout,
		FoodLookupPerMinute:      envInt("FOOD_LOOKUP_RATE_PER_MINUTE", 60),
		MealPlanEnrichment:       parseBoolEnv("MEAL_PLAN_ENRICHMENT"),

		RunMigrationsOnStartup: runMigrationsOnStartup,
	}
}

// parseCORSOrigins parses a comma separated origin list.
// In local mode, defaults to the dev frontend origin if empty.
func parseCORSOrigins(raw, env string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if env == "local" {
			return []string{"http://localhost:5173"}
		}
		return nil // prod: deny by default
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func parseBlobMode(key string, defaultVal string) string {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if mode == "" {
		return defaultVal
	}
	switch mode {
	case BlobModeOff, BlobModeLocal, BlobModeS3, BlobModeAuto:
		return mode
	default:
		log.Printf("WARNING: unknown %s=%q, fallback to %s", key, mode, defaultVal)
		return defaultVal
	}
}

// envInt reads an int env var with a default value.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultVal
	}
	return v
}

func envBool(key string, defaultVal bool) bool {
	if strings.TrimSpace(os.Getenv(key)) == "" {
		return defaultVal
	}
	return parseBoolEnv(key)
}

func parseBoolEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

func nonEmptyOrDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

func setOrNot(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not set"
	}
	return "set"
}
