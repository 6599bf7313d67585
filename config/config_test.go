package config

import (
	"log/slog"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"FIREBASE_CREDENTIALS_FILE", "FIRESTORE_PROJECT_ID", "LOTS_COLLECTION",
		"OUTPUT_PATH", "CSV_OUTPUT_PATH", "POSTGRES_ENABLED", "DB_CONNECT_RETRIES", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LotsCollection != "lots" {
		t.Errorf("LotsCollection: got %q, want %q", cfg.LotsCollection, "lots")
	}
	if cfg.OutputPath != "src/data/popularTimes.json" {
		t.Errorf("OutputPath: got %q", cfg.OutputPath)
	}
	if cfg.CSVOutputPath != "" {
		t.Errorf("CSVOutputPath should be disabled by default, got %q", cfg.CSVOutputPath)
	}
	if cfg.PostgresEnabled {
		t.Error("PostgresEnabled should default to false")
	}
	if cfg.DBConnectRetries != 5 {
		t.Errorf("DBConnectRetries: got %d, want 5", cfg.DBConnectRetries)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel: got %v, want info", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOTS_COLLECTION", "lots_staging")
	t.Setenv("POSTGRES_ENABLED", "true")
	t.Setenv("DB_CONNECT_RETRIES", "not-a-number")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LotsCollection != "lots_staging" {
		t.Errorf("LotsCollection: got %q", cfg.LotsCollection)
	}
	if !cfg.PostgresEnabled {
		t.Error("PostgresEnabled: got false, want true")
	}
	if cfg.DBConnectRetries != 5 {
		t.Errorf("invalid int should fall back to default, got %d", cfg.DBConnectRetries)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel: got %v, want debug", cfg.LogLevel)
	}
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown LOG_LEVEL")
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5433", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "d", PostgresSSLMode: "require",
	}
	want := "host=db port=5433 user=u password=p dbname=d sslmode=require"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN: got %q, want %q", got, want)
	}
}
