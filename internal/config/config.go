package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by MIRRA_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("MIRRA_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func APIKey() string {
	return os.Getenv("MIRRA_API_KEY")
}

// BaseURL returns the API base URL override, empty when the SDK default
// should be used.
func BaseURL() string {
	return os.Getenv("MIRRA_BASE_URL")
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

// RateLimitRPS returns the client-side requests-per-second cap.
// Zero (the default) disables client-side rate limiting.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("MIRRA_RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 0
	}
	return rps
}

// RateLimitBurst returns the burst size for client-side rate limiting.
// Defaults to 1 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("MIRRA_RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 1
	}
	return burst
}

// HTTPTimeout returns the per-request HTTP timeout.
// Defaults to 30s if not set or unparseable.
func HTTPTimeout() time.Duration {
	d, err := time.ParseDuration(os.Getenv("MIRRA_HTTP_TIMEOUT"))
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
