package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Upstream API
	APIBaseURL string
	SocketURL  string

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int

	// Cache
	CacheTTL time.Duration

	// Earnings 304 handling
	EarningsMaxRetries int
	EarningsRetryDelay time.Duration

	// Session persistence
	SessionDir string
	// Redirect token from a Google-login landing, consumed once at startup.
	RedirectToken string

	// Observability
	OTLPEndpoint string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:5000/api"),
		SocketURL:  getEnv("SOCKET_URL", "ws://localhost:5000/socket"),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		// Upstream calls are one-shot by default; retries are opt-in.
		MaxRetries:     getEnvInt("MAX_RETRIES", 0),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 50),

		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),

		EarningsMaxRetries: getEnvInt("EARNINGS_MAX_RETRIES", 2),
		EarningsRetryDelay: getEnvDuration("EARNINGS_RETRY_DELAY", time.Second),

		SessionDir:    getEnv("SESSION_DIR", ".khaya-session"),
		RedirectToken: getEnv("AUTH_REDIRECT_TOKEN", ""),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
