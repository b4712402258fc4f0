package blob

import (
	"context"
	"fmt"
	"strings"

	appcfg "github.com/fdg312/health-coach/internal/config"
)

type Logger interface {
	Printf(format string, v ...any)
}

// NewBlobStore builds a blob store using mode off|local|s3|auto. Mode off
// returns a nil store.
func NewBlobStore(ctx context.Context, cfg appcfg.BlobConfig, logger Logger) (Store, string, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = appcfg.BlobModeOff
	}

	switch mode {
	case appcfg.BlobModeOff:
		logf(logger, "INFO blob: mode=off (rejected output is only logged)")
		return nil, appcfg.BlobModeOff, nil

	case appcfg.BlobModeLocal:
		store, err := NewLocalStore(cfg.LocalDir)
		if err != nil {
			return nil, "", fmt.Errorf("BLOB_MODE=local init failed: %w", err)
		}
		logf(logger, "INFO blob: mode=local (forced) dir=%s", cfg.LocalDir)
		return store, appcfg.BlobModeLocal, nil

	case appcfg.BlobModeAuto:
		if !cfg.S3.IsConfigured() {
			level, code, msg := cfg.S3.Diagnostics()
			summary := cfg.S3.DiagnosticsSummary()
			logf(logger, "%s blob.s3: code=%s %s", level, code, msg)
			logf(logger, "INFO blob.s3: %s", summary)
			return autoLocal(cfg, logger, "S3 not configured")
		}

		summary := cfg.S3.DiagnosticsSummary()
		logf(logger, "INFO blob.s3: code=s3_ready %s", summary)
		store, err := NewS3Store(ctx, cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey)
		if err != nil {
			logf(logger, "WARN blob.s3: init_failed=%q, fallback=local", err.Error())
			return autoLocal(cfg, logger, "S3 init failed")
		}

		logf(logger, "INFO blob: mode=s3 (auto, configured)")
		return store, appcfg.BlobModeS3, nil

	case appcfg.BlobModeS3:
		if !cfg.S3.IsConfigured() {
			missing := cfg.S3.MissingRequired()
			summary := cfg.S3.DiagnosticsSummary()
			logf(logger, "FATAL blob.s3: code=s3_config_incomplete missing=%v", missing)
			logf(logger, "FATAL blob.s3: %s", summary)
			err := fmt.Errorf("BLOB_MODE=s3 requested but missing required config: %s", strings.Join(missing, ", "))
			return nil, "", err
		}

		summary := cfg.S3.DiagnosticsSummary()
		logf(logger, "INFO blob.s3: code=s3_ready %s", summary)
		store, err := NewS3Store(ctx, cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey)
		if err != nil {
			logf(logger, "FATAL blob.s3: init_failed=%v", err)
			return nil, "", fmt.Errorf("BLOB_MODE=s3 init failed: %w", err)
		}

		logf(logger, "INFO blob: mode=s3 (forced)")
		return store, appcfg.BlobModeS3, nil

	default:
		return nil, "", fmt.Errorf("unsupported blob mode: %s", mode)
	}
}

// ArchivePrefix is the key prefix an Archiver should use for mode.
func ArchivePrefix(cfg appcfg.BlobConfig, mode string) string {
	if mode == appcfg.BlobModeS3 {
		return cfg.S3.Prefix
	}
	return ""
}

func autoLocal(cfg appcfg.BlobConfig, logger Logger, reason string) (Store, string, error) {
	store, err := NewLocalStore(cfg.LocalDir)
	if err != nil {
		logf(logger, "WARN blob: local init_failed=%q, archive disabled", err.Error())
		return nil, appcfg.BlobModeOff, nil
	}
	logf(logger, "INFO blob: mode=local (auto, %s)", reason)
	return store, appcfg.BlobModeLocal, nil
}

func logf(logger Logger, format string, v ...any) {
	if logger == nil {
		return
	}
	logger.Printf(format, v...)
}
