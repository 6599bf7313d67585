package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	CredentialsFile string
	ProjectID       string
	LotsCollection  string

	OutputPath    string
	CSVOutputPath string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	DBConnectRetries int

	LogLevel slog.Level

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() (*Config, error) {
	loaded := godotenv.Load() == nil

	level, err := ParseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	return &Config{
		CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", "env/firebase-adminsdk.json"),
		ProjectID:       getEnv("FIRESTORE_PROJECT_ID", ""),
		LotsCollection:  getEnv("LOTS_COLLECTION", "lots"),

		OutputPath:    getEnv("OUTPUT_PATH", "src/data/popularTimes.json"),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", ""),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "parking"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "parking"),
		PostgresDB:       getEnv("POSTGRES_DB", "parking_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		DBConnectRetries: getEnvInt("DB_CONNECT_RETRIES", 5),

		LogLevel:      level,
		EnvFileLoaded: loaded,
	}, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// ParseLogLevel maps a LOG_LEVEL value onto a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("config: invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
