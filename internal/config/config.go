// Package config provides application configuration loaded from environment
// variables.
package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Uploads UploadConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// StorageConfig selects and configures the request store and the catalog.
type StorageConfig struct {
	// DatabaseURL is the PostgreSQL connection string. When empty the
	// flat-file backend is used instead.
	DatabaseURL string
	// DataFile is the flat-file store path (flat-file backend only).
	DataFile string
	// PricingFile is the CSV price list loaded into the catalog at startup.
	PricingFile string
}

// UploadConfig holds part-photo upload settings.
type UploadConfig struct {
	Dir   string
	MaxMB int64 // per-request cap on multipart bodies
}

// Load reads configuration from environment variables, with defaults suited
// to local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5001"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Storage: StorageConfig{
			DatabaseURL: getEnv("DATABASE_URL", ""),
			DataFile:    getEnv("DATA_FILE", "customer_requests.json"),
			PricingFile: getEnv("PRICING_FILE", "junkyard_pricing.csv"),
		},
		Uploads: UploadConfig{
			Dir:   getEnv("UPLOAD_DIR", "uploads"),
			MaxMB: int64(getEnvInt("MAX_UPLOAD_MB", 16)),
		},
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
