// Package config loads service configuration from the environment.
// Flags on the CLI commands override what is loaded here.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr string

	// Session store. Empty RedisAddr selects the in-memory store.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	// Mail-relay notification endpoint.
	RelayURL     string
	RelayAPIKey  string
	RelayUser    string
	RelayTimeout time.Duration

	// Brand registry.
	BrandFile    string
	DefaultBrand string

	// Catalog override file; empty uses the built-in tables.
	CatalogFile string

	LogLevel string
}

func Load() *Config {
	return &Config{
		HTTPAddr:      getEnv("COTIZA_ADDR", ":8080"),
		RedisAddr:     getEnv("COTIZA_REDIS_ADDR", ""),
		RedisPassword: getEnv("COTIZA_REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("COTIZA_REDIS_DB", 0),
		SessionTTL:    getEnvDuration("COTIZA_SESSION_TTL", 24*time.Hour),
		RelayURL:      getEnv("COTIZA_RELAY_URL", "https://services.darideveloper.com/contact-form/"),
		RelayAPIKey:   getEnv("COTIZA_RELAY_API_KEY", ""),
		RelayUser:     getEnv("COTIZA_RELAY_USER", "daridev"),
		RelayTimeout:  getEnvDuration("COTIZA_RELAY_TIMEOUT", 15*time.Second),
		BrandFile:     getEnv("COTIZA_BRAND_FILE", ""),
		DefaultBrand:  getEnv("COTIZA_BRAND", "daridev"),
		CatalogFile:   getEnv("COTIZA_CATALOG", ""),
		LogLevel:      getEnv("COTIZA_LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
