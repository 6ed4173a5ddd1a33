package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Upstream data vendor. An empty token switches the service to the
	// built-in demo dataset.
	VendorURL   string
	VendorToken string

	// Optional backends. An empty URL disables that feature.
	PostgresURL   string
	ClickHouseURL string
	RedisURL      string

	// Report generation
	ReportCacheTTL time.Duration
	MatchCap       int
	TimeoutPerTeam time.Duration

	// Vendor retries
	RetryAttempts int
	RetryBackoff  time.Duration

	// Archive worker pool
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
}

// Load loads configuration from environment variables. Every backend is
// optional; the engine and demo dataset work with an empty environment.
func Load() *Config {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		VendorURL:   getEnv("VENDOR_URL", "https://api.esports-vendor.example"),
		VendorToken: getEnv("VENDOR_TOKEN", ""),

		PostgresURL:   getEnv("POSTGRES_URL", ""),
		ClickHouseURL: getEnv("CLICKHOUSE_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),

		ReportCacheTTL: getEnvDuration("REPORT_CACHE_TTL", 5*time.Minute),
		MatchCap:       getEnvInt("MATCH_CAP", 50),
		TimeoutPerTeam: getEnvDuration("TEAM_FETCH_TIMEOUT", 15*time.Second),

		RetryAttempts: getEnvInt("VENDOR_RETRY_ATTEMPTS", 3),
		RetryBackoff:  getEnvDuration("VENDOR_RETRY_BACKOFF", 200*time.Millisecond),

		WorkerCount:   getEnvInt("WORKER_COUNT", 2),
		QueueSize:     getEnvInt("QUEUE_SIZE", 4096),
		BatchSize:     getEnvInt("BATCH_SIZE", 200),
		FlushInterval: getEnvDuration("FLUSH_INTERVAL", 1*time.Second),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
