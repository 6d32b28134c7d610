package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig

	// Source selects where recordings are read from: "file" or "postgres".
	Source      string
	CatalogPath string
	// DomainCeiling overrides the catalog default when > 0.
	DomainCeiling int64
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DatabaseConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

func Load() *Config {
	return &Config{
		App: AppConfig{
			Port:     getEnv("HTTP_PORT", "8080"),
			Env:      getEnv("ENV", "development"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			DSN:          getEnv("POSTGRES_DSN", ""),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		},
		Source:        strings.ToLower(getEnv("SOURCE", SourceFile)),
		CatalogPath:   getEnv("CATALOG_PATH", "./datasets.hcl"),
		DomainCeiling: int64(getEnvAsInt("DOMAIN_CEILING", 0)),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
