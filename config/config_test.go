package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CINEMA_MAX_ROWS",
		"CINEMA_MAX_SEATS_PER_ROW",
		"CINEMA_HALL_NAME",
		"CINEMA_BOOKING_PREFIX",
		"CINEMA_SHOW",
		"CINEMA_LOG_LEVEL",
		"CINEMA_LOG_FILE",
		"CINEMA_AMQP_URL",
		"RABBITMQ_URL",
		"CINEMA_HTTP_ADDR",
	} {
		t.Setenv(key, "")
	}
	// Keep godotenv away from any .env in the package directory.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.MaxRows != 26 || cfg.MaxSeatsPerRow != 50 {
		t.Fatalf("expected 26x50 limits, got %dx%d", cfg.MaxRows, cfg.MaxSeatsPerRow)
	}
	if cfg.HallName != "Hall_1" {
		t.Fatalf("expected Hall_1, got %q", cfg.HallName)
	}
	if cfg.OrderPrefix != "GIC" {
		t.Fatalf("expected GIC prefix, got %q", cfg.OrderPrefix)
	}
	if cfg.LogLevel != "info" || cfg.LogFile != "" {
		t.Fatalf("unexpected log settings: %q %q", cfg.LogLevel, cfg.LogFile)
	}
	if cfg.AMQPURL != "" || cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected transport settings: %q %q", cfg.AMQPURL, cfg.HTTPAddr)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CINEMA_MAX_ROWS", "10")
	t.Setenv("CINEMA_MAX_SEATS_PER_ROW", "20")
	t.Setenv("CINEMA_HALL_NAME", "Hall_7")
	t.Setenv("CINEMA_SHOW", "  Inception 8 10 ")
	t.Setenv("RABBITMQ_URL", "amqp://fallback/")

	cfg := Load()
	if cfg.MaxRows != 10 || cfg.MaxSeatsPerRow != 20 {
		t.Fatalf("expected 10x20 limits, got %dx%d", cfg.MaxRows, cfg.MaxSeatsPerRow)
	}
	if cfg.HallName != "Hall_7" {
		t.Fatalf("expected Hall_7, got %q", cfg.HallName)
	}
	if cfg.Show != "Inception 8 10" {
		t.Fatalf("expected trimmed show, got %q", cfg.Show)
	}
	if cfg.AMQPURL != "amqp://fallback/" {
		t.Fatalf("expected RABBITMQ_URL fallback, got %q", cfg.AMQPURL)
	}

	t.Setenv("CINEMA_AMQP_URL", "amqp://primary/")
	if got := Load().AMQPURL; got != "amqp://primary/" {
		t.Fatalf("expected CINEMA_AMQP_URL to win, got %q", got)
	}
}

func TestLoad_ClampsLimits(t *testing.T) {
	clearEnv(t)
	t.Setenv("CINEMA_MAX_ROWS", "40")
	t.Setenv("CINEMA_MAX_SEATS_PER_ROW", "0")

	cfg := Load()
	if cfg.MaxRows != 26 {
		t.Fatalf("expected rows clamped to 26, got %d", cfg.MaxRows)
	}
	if cfg.MaxSeatsPerRow != 50 {
		t.Fatalf("expected default seats, got %d", cfg.MaxSeatsPerRow)
	}

	t.Setenv("CINEMA_MAX_ROWS", "ten")
	if got := Load().MaxRows; got != 26 {
		t.Fatalf("expected default for non-integer, got %d", got)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(".", ".env")
	if err := os.WriteFile(path, []byte("CINEMA_BOOKING_PREFIX=XYZ\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// godotenv never overrides variables that are already set, even empty.
	os.Unsetenv("CINEMA_BOOKING_PREFIX")
	t.Cleanup(func() { os.Unsetenv("CINEMA_BOOKING_PREFIX") })

	if got := Load().OrderPrefix; got != "XYZ" {
		t.Fatalf("expected prefix from .env, got %q", got)
	}
}

func TestLimits(t *testing.T) {
	cfg := &Config{MaxRows: 5, MaxSeatsPerRow: 9}
	limits := cfg.Limits()
	if limits.MaxRows != 5 || limits.MaxSeatsPerRow != 9 {
		t.Fatalf("unexpected limits: %+v", limits)
	}
}
