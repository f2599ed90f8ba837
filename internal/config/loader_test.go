package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ROOMCAL_ROOMS",
		"ROOMCAL_ORIGIN",
		"ROOMCAL_HORIZON_DAYS",
		"ROOMCAL_STEP",
		"ROOMCAL_SNAPSHOT_PATH",
		"ROOMCAL_SNAPSHOT_FORMAT",
		"ROOMCAL_LOG_LEVEL",
	} {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file degrades to defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if len(cfg.Rooms) != 3 {
			t.Fatalf("expected default room set, got %v", cfg.Rooms)
		}
		if cfg.HorizonDays != 30 {
			t.Fatalf("expected default horizon 30, got %d", cfg.HorizonDays)
		}
		if cfg.Step != Duration(time.Minute) {
			t.Fatalf("expected default step 1m, got %s", cfg.Step)
		}
		if cfg.Snapshot.Format != "jsonl" {
			t.Fatalf("expected default snapshot format jsonl, got %q", cfg.Snapshot.Format)
		}
	})

	t.Run("malformed file degrades to defaults", func(t *testing.T) {
		clearEnv(t)

		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("rooms: [unterminated"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if len(cfg.Rooms) != 3 {
			t.Fatalf("expected default room set, got %v", cfg.Rooms)
		}
	})

	t.Run("reads values from the file", func(t *testing.T) {
		clearEnv(t)

		path := filepath.Join(t.TempDir(), "config.yaml")
		body := `
rooms:
  - Boardroom
  - Lab
origin: "2024-03-04"
horizon_days: 7
step: 15m
snapshot:
  path: /tmp/events.csv
  format: csv
log_level: debug
`
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if len(cfg.Rooms) != 2 || cfg.Rooms[0] != "Boardroom" {
			t.Fatalf("unexpected rooms: %v", cfg.Rooms)
		}
		if cfg.HorizonDays != 7 {
			t.Fatalf("expected horizon 7, got %d", cfg.HorizonDays)
		}
		if cfg.Step != Duration(15*time.Minute) {
			t.Fatalf("expected step 15m, got %s", cfg.Step)
		}
		if cfg.Snapshot.Format != "csv" || cfg.Snapshot.Path != "/tmp/events.csv" {
			t.Fatalf("unexpected snapshot config: %+v", cfg.Snapshot)
		}

		origin, err := cfg.OriginTime()
		if err != nil {
			t.Fatalf("OriginTime returned error: %v", err)
		}
		if origin.Year() != 2024 || origin.Month() != time.March || origin.Day() != 4 {
			t.Fatalf("unexpected origin: %v", origin)
		}
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ROOMCAL_ROOMS", "Studio A, Studio B")
		t.Setenv("ROOMCAL_HORIZON_DAYS", "14")
		t.Setenv("ROOMCAL_STEP", "30m")
		t.Setenv("ROOMCAL_SNAPSHOT_FORMAT", "sqlite")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if len(cfg.Rooms) != 2 || cfg.Rooms[0] != "Studio A" || cfg.Rooms[1] != "Studio B" {
			t.Fatalf("unexpected rooms: %v", cfg.Rooms)
		}
		if cfg.HorizonDays != 14 {
			t.Fatalf("expected horizon 14, got %d", cfg.HorizonDays)
		}
		if cfg.Step != Duration(30*time.Minute) {
			t.Fatalf("expected step 30m, got %s", cfg.Step)
		}
		if cfg.Snapshot.Format != "sqlite" {
			t.Fatalf("expected format sqlite, got %q", cfg.Snapshot.Format)
		}
	})

	t.Run("reports invalid override values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ROOMCAL_HORIZON_DAYS", "minus-three")

		if _, err := Load(""); err == nil {
			t.Fatalf("expected error for invalid horizon override")
		}
	})

	t.Run("rejects unknown snapshot formats", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ROOMCAL_SNAPSHOT_FORMAT", "xml")

		_, err := Load("")
		if err == nil {
			t.Fatalf("expected error for unsupported snapshot format")
		}
		if !strings.Contains(err.Error(), "ROOMCAL_SNAPSHOT_FORMAT") {
			t.Fatalf("expected the override variable to be named, got %v", err)
		}
	})

	t.Run("attributes file-sourced errors to the file key", func(t *testing.T) {
		clearEnv(t)

		path := filepath.Join(t.TempDir(), "config.yaml")
		body := `
origin: "sometime soon"
snapshot:
  format: xml
`
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		_, err := Load(path)
		if err == nil {
			t.Fatalf("expected error for invalid file values")
		}
		if !strings.Contains(err.Error(), "snapshot.format") || !strings.Contains(err.Error(), "origin") {
			t.Fatalf("expected file keys to be named, got %v", err)
		}
		if strings.Contains(err.Error(), "ROOMCAL") {
			t.Fatalf("file values must not be blamed on environment overrides: %v", err)
		}
	})

	t.Run("empty origin means now", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		origin, err := cfg.OriginTime()
		if err != nil {
			t.Fatalf("OriginTime returned error: %v", err)
		}
		if !origin.IsZero() {
			t.Fatalf("expected zero origin, got %v", origin)
		}
	})
}
