package blob

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	appcfg "github.com/fdg312/health-coach/internal/config"
)

func TestNewBlobStoreOff(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	store, mode, err := NewBlobStore(context.Background(), appcfg.BlobConfig{Mode: appcfg.BlobModeOff}, logger)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mode != appcfg.BlobModeOff || store != nil {
		t.Fatalf("expected nil store with mode=off, got store=%v mode=%q", store, mode)
	}
	if !strings.Contains(buf.String(), "mode=off") {
		t.Fatalf("expected off mode log, got: %s", buf.String())
	}
}

func TestNewBlobStoreLocalForced(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	store, mode, err := NewBlobStore(context.Background(), appcfg.BlobConfig{
		Mode:     appcfg.BlobModeLocal,
		LocalDir: t.TempDir(),
	}, logger)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mode != appcfg.BlobModeLocal {
		t.Fatalf("expected mode=local, got %s", mode)
	}
	if _, ok := store.(*LocalStore); !ok {
		t.Fatalf("expected *LocalStore, got %T", store)
	}
	if !strings.Contains(buf.String(), "mode=local (forced)") {
		t.Fatalf("expected local mode log, got: %s", buf.String())
	}
}

func TestNewBlobStoreAutoEmptyS3FallsBackToLocal(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	store, mode, err := NewBlobStore(context.Background(), appcfg.BlobConfig{
		Mode:     appcfg.BlobModeAuto,
		LocalDir: t.TempDir(),
		S3:       appcfg.S3Config{},
	}, logger)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mode != appcfg.BlobModeLocal {
		t.Fatalf("expected mode=local fallback, got %s", mode)
	}
	if store == nil {
		t.Fatal("expected local store on auto fallback")
	}

	logOut := buf.String()
	if !strings.Contains(logOut, "code=s3_not_configured") {
		t.Fatalf("expected s3_not_configured diagnostics, got: %s", logOut)
	}
	if !strings.Contains(logOut, "mode=local (auto, S3 not configured)") {
		t.Fatalf("expected auto fallback to local log, got: %s", logOut)
	}
}

func TestNewBlobStoreS3MissingRequiredReturnsError(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	store, mode, err := NewBlobStore(context.Background(), appcfg.BlobConfig{
		Mode: appcfg.BlobModeS3,
		S3: appcfg.S3Config{
			Endpoint: "http://localhost:9000",
		},
	}, logger)
	if err == nil {
		t.Fatal("expected error when mode=s3 and required env are missing")
	}
	if store != nil || mode != "" {
		t.Fatalf("expected nil store and empty mode on error, got store=%v mode=%q", store, mode)
	}
	if !strings.Contains(err.Error(), "missing required config") {
		t.Fatalf("expected missing required config error, got: %v", err)
	}
	if !strings.Contains(buf.String(), "secret_access_key=not set") {
		t.Fatalf("expected secret presence summary, got: %s", buf.String())
	}
}

func TestArchivePrefix(t *testing.T) {
	cfg := appcfg.BlobConfig{S3: appcfg.S3Config{Prefix: "rejected"}}
	if got := ArchivePrefix(cfg, appcfg.BlobModeS3); got != "rejected" {
		t.Errorf("expected rejected prefix for s3, got %q", got)
	}
	if got := ArchivePrefix(cfg, appcfg.BlobModeLocal); got != "" {
		t.Errorf("expected empty prefix for local, got %q", got)
	}
}
