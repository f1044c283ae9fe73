// Package config loads runtime configuration from the environment, with an
// optional .env file.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything configurable from the environment.
type Config struct {
	// DataBackend selects the snapshot store: "sqlite" or "memory".
	DataBackend string

	// DBPath is the SQLite database file location.
	DBPath string

	// ReferralAcceptDelay is how long a simulated referral acceptance
	// takes to land.
	ReferralAcceptDelay time.Duration

	// PaymentDelay is the simulated payment processing time.
	PaymentDelay time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DataBackend:         getEnv("DATA_BACKEND", "sqlite"),
		DBPath:              getEnv("DB_PATH", "./data/splitease.db"),
		ReferralAcceptDelay: getEnvDuration("REFERRAL_ACCEPT_DELAY", 3*time.Second),
		PaymentDelay:        getEnvDuration("PAYMENT_DELAY", 1500*time.Millisecond),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
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
