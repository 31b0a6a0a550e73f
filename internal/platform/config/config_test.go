package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Run("signing key defaults to empty so local runs stay unauthenticated", func(t *testing.T) {
		t.Setenv("JWT_SIGNING_KEY", "")

		cfg := FromEnv()
		assert.Empty(t, cfg.JWTSigningKey)
	})

	t.Run("signing key is taken from the environment", func(t *testing.T) {
		t.Setenv("JWT_SIGNING_KEY", "s3cret")

		cfg := FromEnv()
		assert.Equal(t, "s3cret", cfg.JWTSigningKey)
	})

	t.Run("defaults cover addr, environment and topic", func(t *testing.T) {
		t.Setenv("SEDPREFILL_ADDR", "")
		t.Setenv("SEDPREFILL_ENV", "")

		cfg := FromEnv()
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, "local", cfg.Environment)
		assert.Equal(t, "sedprefill.prefill-completed", cfg.Kafka.Topic)
	})
}

func TestCaseOwnerCountryOverride(t *testing.T) {
	t.Run("sandbox environments substitute the case-owner country", func(t *testing.T) {
		for _, env := range []string{EnvQ2, EnvTest} {
			country, ok := Config{Environment: env}.CaseOwnerCountryOverride()
			assert.True(t, ok, env)
			assert.Equal(t, "SE", country, env)
		}
	})

	t.Run("production keeps the real case owner", func(t *testing.T) {
		_, ok := Config{Environment: "prod"}.CaseOwnerCountryOverride()
		assert.False(t, ok)
	})
}
