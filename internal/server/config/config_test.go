package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 30*time.Minute, cfg.SessionTokenValidity)
	assert.Equal(t, 3, cfg.LockoutThreshold)
	assert.Equal(t, 2*time.Minute, cfg.LockoutDuration)
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.Equal(t, 2*time.Minute, cfg.RateLimitWindow)
	assert.Empty(t, cfg.SecretKey)
	assert.Empty(t, cfg.DatabaseDSN)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret key")

	cfg.SecretKey = "s3cr3t"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database")

	cfg.DatabaseDSN = "postgres://localhost/accounts"
	assert.NoError(t, cfg.Validate())
}

func TestProduction(t *testing.T) {
	cfg := &Config{Environment: "development"}
	assert.False(t, cfg.Production())

	cfg.Environment = "production"
	assert.True(t, cfg.Production())
}

func TestParseEnv(t *testing.T) {
	t.Setenv("ADDRESS", ":9999")
	t.Setenv("DATABASE_DSN", "postgres://env/db")
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("APP_ENV", "production")
	t.Setenv("TOKEN_VALIDITY_MIN", "15")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseDSN)
	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 15*time.Minute, cfg.SessionTokenValidity)
}

func TestParseEnv_InvalidNumbersIgnored(t *testing.T) {
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("TOKEN_VALIDITY_MIN", "-5")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 30*time.Minute, cfg.SessionTokenValidity)
}
