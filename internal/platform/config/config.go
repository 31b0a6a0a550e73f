package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs from the environment so main
// stays lean.
type Config struct {
	Addr          string
	Environment   string
	JWTSigningKey string

	PDLBaseURL   string
	PENBaseURL   string
	EUXBaseURL   string
	ServiceToken string // bearer token presented to upstream registries

	Redis RedisConfig
	Kafka KafkaConfig
}

// RedisConfig holds connection settings for the timeline cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	TimelineTTL  time.Duration
}

// KafkaConfig holds settings for the prefill event publisher.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Sandbox environment identifiers. In these environments real participant
// data is unavailable, so the case-owner country is deterministically
// substituted (see CaseOwnerCountryOverride).
const (
	EnvQ2   = "q2"
	EnvTest = "test"
)

// sandboxCaseOwnerCountry is the single substitute value used in sandbox
// environments.
const sandboxCaseOwnerCountry = "SE"

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Addr:          envOr("SEDPREFILL_ADDR", ":8080"),
		Environment:   envOr("SEDPREFILL_ENV", "local"),
		// An empty signing key leaves the API unauthenticated; only local
		// wiring against the mock clients should run that way.
		JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),

		PDLBaseURL:   os.Getenv("PDL_BASE_URL"),
		PENBaseURL:   os.Getenv("PEN_BASE_URL"),
		EUXBaseURL:   os.Getenv("EUX_BASE_URL"),
		ServiceToken: os.Getenv("SERVICE_TOKEN"),

		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envIntOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			TimelineTTL:  envDurationOr("TIMELINE_CACHE_TTL", 10*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			Topic:   envOr("KAFKA_PREFILL_TOPIC", "sedprefill.prefill-completed"),
		},
	}
}

// CaseOwnerCountryOverride returns the substitute case-owner country for
// sandbox environments, and ok=false everywhere else. Keeping this a single
// named branch stops the override from leaking into call sites.
func (c Config) CaseOwnerCountryOverride() (string, bool) {
	switch c.Environment {
	case EnvQ2, EnvTest:
		return sandboxCaseOwnerCountry, true
	}
	return "", false
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
