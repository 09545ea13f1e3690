package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	DBConnString    string
	RedisAddr       string
	CartStore       string // "redis" or "memory"
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
	LogLevel        string

	// Cart timing. DeleteCompletionDelay is how long a deferred deletion
	// waits for the exit animation; UndoWindow is how long an undo stays
	// available after a deletion.
	DeleteCompletionDelay time.Duration
	UndoWindow            time.Duration
	SessionTTL            time.Duration
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		DBConnString:    envOrDefault("DB_DSN", ""),
		RedisAddr:       envOrDefault("REDIS_ADDR", ""),
		CartStore:       envOrDefault("CART_STORE", "memory"),
		AllowedOrigins:  []string{envOrDefault("CORS_ORIGIN", "http://localhost:3000")},
		ShutdownTimeout: envSeconds("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),

		DeleteCompletionDelay: envMillis("CART_DELETE_DELAY_MS", 300*time.Millisecond),
		UndoWindow:            envMillis("CART_UNDO_WINDOW_MS", 5*time.Second),
		SessionTTL:            envSeconds("CART_SESSION_TTL_SECONDS", 30*time.Minute),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envMillis(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		ms, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return def
}
