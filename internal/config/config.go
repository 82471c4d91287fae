package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr          string
	PostgresDSN       string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CacheTTL          time.Duration
	PolicyBundlePath  string
	PolicyBundleID    string
	LogLevel          string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:          envDefault("HTTP_ADDR", ":8080"),
		PostgresDSN:       os.Getenv("POSTGRES_DSN"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           envInt("REDIS_DB", 0),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow:   envDuration("RATE_LIMIT_WINDOW", time.Minute),
		CacheTTL:          envDuration("CACHE_TTL", 5*time.Minute),
		PolicyBundlePath:  os.Getenv("POLICY_BUNDLE_PATH"),
		PolicyBundleID:    os.Getenv("POLICY_BUNDLE_ID"),
		LogLevel:          envDefault("LOG_LEVEL", "info"),
	}
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return parsed
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return parsed
}
