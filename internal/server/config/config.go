// Package config handles configuration for the account server, layering
// defaults, an optional JSON file, environment variables, and command-line
// flags (later sources win).
package config

import (
	"errors"
	"time"

	"github.com/skillforge/resumekeeper/internal/server/auth"
)

// Config holds runtime settings for the account server.
//
// SecretKey and DatabaseDSN have no defaults: startup must fail fast when
// they are absent.
type Config struct {
	Addr        string
	DatabaseDSN string
	SecretKey   string
	Environment string

	BcryptCost           int
	SessionTokenValidity time.Duration

	LockoutThreshold int
	LockoutDuration  time.Duration

	RateLimitMax    int
	RateLimitWindow time.Duration
}

// LoadDefaults populates Config with development defaults. The secret and
// the DSN stay empty on purpose.
func (c *Config) LoadDefaults() {
	c.Addr = ":5000"
	c.Environment = "development"
	c.BcryptCost = auth.DefaultHashCost
	c.SessionTokenValidity = 30 * time.Minute
	c.LockoutThreshold = 3
	c.LockoutDuration = 2 * time.Minute
	c.RateLimitMax = 5
	c.RateLimitWindow = 2 * time.Minute
}

// Production reports whether the server runs with production hardening
// (Secure session cookies).
func (c *Config) Production() bool {
	return c.Environment == "production"
}

// Validate enforces the startup contract: missing secret or DSN is fatal.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("config: secret key is not set")
	}
	if c.DatabaseDSN == "" {
		return errors.New("config: database connection string is not set")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
