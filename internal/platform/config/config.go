package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string

	// Sejam upstream provider.
	SejamBaseURL  string
	SejamUsername string
	SejamPassword string
	SejamTimeout  time.Duration

	// Anonymous-caller throttle for the two public endpoints.
	RateLimit       int
	RateLimitWindow time.Duration

	// Persistence. Empty DatabaseURL/RedisURL selects the in-memory stores.
	DatabaseURL string
	RedisURL    string

	// Optional verification-event fanout. Empty disables Kafka entirely.
	KafkaBrokers string
	EventTopic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:            getEnv("GATEWAY_ADDR", ":8000"),
		Environment:     getEnv("GATEWAY_ENV", "development"),
		SejamBaseURL:    getEnv("SEJAM_BASE_URL", "https://api.sejam.ir:8080/v1.1"),
		SejamUsername:   os.Getenv("SEJAM_USERNAME"),
		SejamPassword:   os.Getenv("SEJAM_PASSWORD"),
		SejamTimeout:    getDuration("SEJAM_TIMEOUT", 30*time.Second),
		RateLimit:       getInt("RATE_LIMIT", 30),
		RateLimitWindow: getDuration("RATE_LIMIT_WINDOW", time.Minute),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		KafkaBrokers:    os.Getenv("KAFKA_BROKERS"),
		EventTopic:      getEnv("KYC_EVENT_TOPIC", "kyc.profile.verified"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
