package config

import "testing"

func TestS3ConfigIsConfigured(t *testing.T) {
	t.Run("empty config is not configured", func(t *testing.T) {
		cfg := S3Config{}
		if cfg.IsConfigured() {
			t.Fatal("expected IsConfigured=false for empty config")
		}
	})

	t.Run("endpoint is optional", func(t *testing.T) {
		cfg := S3Config{
			Region:          "eu-central-1",
			Bucket:          "bucket",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
		}
		if !cfg.IsConfigured() {
			t.Fatal("expected IsConfigured=true when all required fields are set")
		}
	})
}

func TestS3ConfigMissingRequired(t *testing.T) {
	cfg := S3Config{
		Endpoint: "https://storage.example.com",
		Bucket:   "bucket",
	}
	missing := cfg.MissingRequired()

	want := []string{"S3_REGION", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY"}
	if len(missing) != len(want) {
		t.Fatalf("expected %d missing fields, got %d (%v)", len(want), len(missing), missing)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Fatalf("expected missing[%d]=%s, got %s", i, want[i], missing[i])
		}
	}
}

func TestS3ConfigDiagnostics(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		level, code, _ := (S3Config{}).Diagnostics()
		if level != "INFO" || code != "s3_not_configured" {
			t.Fatalf("expected INFO/s3_not_configured, got %s/%s", level, code)
		}
	})

	t.Run("partial config", func(t *testing.T) {
		level, code, _ := (S3Config{Bucket: "bucket"}).Diagnostics()
		if level != "WARN" || code != "s3_partial_config" {
			t.Fatalf("expected WARN/s3_partial_config, got %s/%s", level, code)
		}
	})

	t.Run("ready", func(t *testing.T) {
		level, code, _ := (S3Config{
			Region:          "eu-central-1",
			Bucket:          "bucket",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
		}).Diagnostics()
		if level != "INFO" || code != "s3_ready" {
			t.Fatalf("expected INFO/s3_ready, got %s/%s", level, code)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "ENV", "PORT", "CORS_ALLOWED_ORIGINS", "ALLOWED_ORIGINS", "CORS_ALLOW_CREDENTIALS",
		"RATE_LIMIT_PER_MINUTE", "RATE_LIMIT_STORE", "AI_MODE", "AI_TIMEOUT_SECONDS",
		"OPENFOODFACTS_USER_AGENT", "BLOB_MODE", "DATABASE_URL", "DATABASE_URL_POOLED", "DATABASE_URL_DIRECT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Env != "local" {
		t.Errorf("expected env=local, got %q", cfg.Env)
	}
	if cfg.Port != 8000 {
		t.Errorf("expected port=8000, got %d", cfg.Port)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("unexpected default origins: %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.CORSAllowCredentials {
		t.Error("expected credentials allowed by default")
	}
	if cfg.RateLimitPerMinute != 10 {
		t.Errorf("expected 10 requests/minute, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.RateLimitStore != RateLimitStoreMemory {
		t.Errorf("expected memory store, got %q", cfg.RateLimitStore)
	}
	if cfg.AIMode != AIModeMock {
		t.Errorf("expected mock ai mode, got %q", cfg.AIMode)
	}
	if cfg.AITimeoutSeconds != 30 {
		t.Errorf("expected 30s timeout, got %d", cfg.AITimeoutSeconds)
	}
	if cfg.FoodFactsUserAgent == "" {
		t.Error("expected default user agent")
	}
	if cfg.Blob.Mode != BlobModeOff {
		t.Errorf("expected blob mode off, got %q", cfg.Blob.Mode)
	}
}

func TestLoadAllowedOriginsFallback(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := Load()

	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadUnknownValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_STORE", "memcached")
	t.Setenv("BLOB_MODE", "ftp")
	t.Setenv("AI_MODE", "gemini")
	t.Setenv("AI_TIMEOUT_SECONDS", "-5")

	cfg := Load()

	if cfg.RateLimitStore != RateLimitStoreMemory {
		t.Errorf("expected memory fallback, got %q", cfg.RateLimitStore)
	}
	if cfg.Blob.Mode != BlobModeOff {
		t.Errorf("expected off fallback, got %q", cfg.Blob.Mode)
	}
	if cfg.AIMode != AIModeMock {
		t.Errorf("expected mock fallback, got %q", cfg.AIMode)
	}
	if cfg.AITimeoutSeconds != 30 {
		t.Errorf("expected timeout fallback 30, got %d", cfg.AITimeoutSeconds)
	}
}

func TestParseCORSOriginsProductionDeniesByDefault(t *testing.T) {
	if got := parseCORSOrigins("", "production"); got != nil {
		t.Fatalf("expected nil origins in production, got %v", got)
	}
}
