package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type AppConfig struct {
	Environment string

	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	JWTSecret string

	LokiURL      string
	OTLPEndpoint string
	MetricsPort  string
}

// Load reads a .env file when present. Missing files are fine; real
// environments set variables directly.
func Load() {
	_ = godotenv.Load()
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Environment:      envOr("APP_ENV", "development"),
		RateLimitEnabled: os.Getenv("RATE_LIMIT_DISABLED") == "",
		RateLimitConfigs: map[string]RateLimitConfig{
			"/session": {
				Requests: 10,
				Window:   time.Minute,
			},
			"/todos": {
				Requests: 100,
				Window:   time.Minute,
			},
		},
		JWTSecret:    os.Getenv("JWT_SECRET"),
		LokiURL:      envOr("LOKI_URL", "http://localhost:3100"),
		OTLPEndpoint: envOr("OTLP_ENDPOINT", "localhost:4317"),
		MetricsPort:  envOr("METRICS_PORT", "9091"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
