package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/lead-import-api/internal/config"
	"github.com/rs/zerolog"
)

func TestOpen_NotConfigured(t *testing.T) {
	_, err := Open(context.Background(), &config.DatabaseConfig{}, zerolog.Nop())
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestOpen_InvalidURL(t *testing.T) {
	_, err := Open(context.Background(), &config.DatabaseConfig{URL: "postgres://%zz"}, zerolog.Nop())
	if err == nil {
		t.Fatal("Expected error for malformed url")
	}
	if errors.Is(err, ErrNotConfigured) {
		t.Error("Malformed url must not be reported as unconfigured")
	}
}

// Every up migration needs a matching down migration
func TestMigrationsArePaired(t *testing.T) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	dir := filepath.Join(filepath.Dir(filepath.Dir(filepath.Dir(currentFile))), "migrations")

	ups, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(ups) == 0 {
		t.Fatal("Expected at least one migration")
	}

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		if _, err := os.Stat(down); err != nil {
			t.Errorf("Missing down migration for %s", filepath.Base(up))
		}
	}
}

// Integration check against a real database, enabled with TEST_DATABASE_URL
func TestRunMigrations_Integration(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	_, currentFile, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(filepath.Dir(filepath.Dir(currentFile))), "migrations")

	db, err := Open(context.Background(), &config.DatabaseConfig{URL: url, MaxOpenConns: 2}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(path); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
}
