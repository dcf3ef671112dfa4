package config

import (
	"os"
	"time"
)

type Config struct {
	HTTPPort           string
	DBPath             string
	MigrationsPath     string
	StaticDir          string
	RedisAddr          string // empty disables the catalog cache
	OpenBrowser        bool
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
}

func Load() *Config {
	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "4567"),
		DBPath:             getEnv("DB_PATH", "./data/market.db"),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "./migrations"),
		StaticDir:          getEnv("STATIC_DIR", "./public"),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		OpenBrowser:        getEnv("OPEN_BROWSER", "false") == "true",
		RequestTimeout:     getDurationEnv("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout:    getDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxRequestBodySize: 1 << 20, // 1MB
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
