package config

import (
	"log/slog"
	"os"
	"time"
)

type Storage struct {
	BaseURL   string
	Bucket    string
	AccessKey string
	SecretKey string
	Region    string
}

type Config struct {
	Port           string
	BridgeURL      string
	BridgeToken    string
	PostgresURI    string
	RedisURI       string
	FrontendURL    string
	Storage        Storage
	SecretKey      string
	CookieName     string
	Timezone       string
	SummaryRefresh string
}

func LoadConfig() *Config {
	return &Config{
		Port:        getEnv("PORT", "3000"),
		BridgeURL:   getEnv("BRIDGE_URL", ""),
		BridgeToken: getEnv("BRIDGE_TOKEN", ""),
		PostgresURI: getEnv("POSTGRES_URI", ""),
		RedisURI:    getEnv("REDIS_URI", "localhost:6379"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		Storage: Storage{
			BaseURL:   getEnv("STORAGE_URL", ""),
			Bucket:    getEnv("STORAGE_BUCKET", "midias"),
			AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
			Region:    getEnv("STORAGE_REGION", "us-east-1"),
		},
		SecretKey:      getEnv("SECRET_KEY", ""),
		CookieName:     getEnv("COOKIE_NAME", "session"),
		Timezone:       getEnv("TIMEZONE", "America/Sao_Paulo"),
		SummaryRefresh: getEnv("SUMMARY_REFRESH", "@every 10m"),
	}
}

// Location is the zone used for day-precision dates and local timestamps.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Info("unknown timezone, falling back to UTC", "timezone", c.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
