package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort int

	StorageDriver string
	DatabaseURL   string
	SQLitePath    string

	JWTSecretKey         string
	OperatorPasswordHash string

	ClockInterval time.Duration

	ExportDir           string
	ExportPublicBaseURL string
	R2AccountID         string
	R2AccessKeyID       string
	R2SecretAccessKey   string
	R2BucketName        string
	R2PublicBaseURL     string

	CORSAllowedOrigins []string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	cfg := &Config{
		ServerPort:           port,
		StorageDriver:        strings.ToLower(getEnv("STORAGE_DRIVER", StorageSQLite)),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		SQLitePath:           getEnv("SQLITE_PATH", "match-tagger.db"),
		JWTSecretKey:         os.Getenv("JWT_SECRET_KEY"),
		OperatorPasswordHash: os.Getenv("OPERATOR_PASSWORD_HASH"),
		ExportDir:            getEnv("EXPORT_DIR", "exports"),
		ExportPublicBaseURL:  os.Getenv("EXPORT_PUBLIC_BASE_URL"),
		R2AccountID:          os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:        os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:    os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:         os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:      os.Getenv("R2_PUBLIC_BASE_URL"),
		CORSAllowedOrigins:   splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for STORAGE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want memory, sqlite or postgres)", cfg.StorageDriver)
	}

	if (cfg.OperatorPasswordHash == "") != (cfg.JWTSecretKey == "") {
		return nil, fmt.Errorf("OPERATOR_PASSWORD_HASH and JWT_SECRET_KEY must be set together")
	}

	cfg.ClockInterval, err = time.ParseDuration(getEnv("CLOCK_INTERVAL", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLOCK_INTERVAL environment variable: %w", err)
	}
	if cfg.ClockInterval <= 0 {
		return nil, fmt.Errorf("CLOCK_INTERVAL must be positive, got %s", cfg.ClockInterval)
	}

	return cfg, nil
}

func (c *Config) AuthEnabled() bool {
	return c.JWTSecretKey != "" && c.OperatorPasswordHash != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
