package config

import (
	"encoding/json"
	"os"

	"github.com/skillforge/resumekeeper/internal/flagx"
	"github.com/skillforge/resumekeeper/internal/timex"
)

// JsonConfig is the DTO for the optional JSON configuration file. Duration
// fields accept either strings ("2m") or integer nanoseconds.
type JsonConfig struct {
	Addr                 string          `json:"address"`
	DatabaseDSN          string          `json:"database_dsn"`
	SecretKey            string          `json:"secret_key"`
	Environment          string          `json:"environment"`
	BcryptCost           *int            `json:"bcrypt_cost"`
	SessionTokenValidity *timex.Duration `json:"session_token_validity"`
	LockoutThreshold     *int            `json:"lockout_threshold"`
	LockoutDuration      *timex.Duration `json:"lockout_duration"`
	RateLimitMax         *int            `json:"rate_limit_max"`
	RateLimitWindow      *timex.Duration `json:"rate_limit_window"`
}

// parseJson loads configuration from the file named by -c/-config, if any.
// Absent fields keep their current values. Unreadable or invalid files
// panic: a half-applied config is worse than a crash at startup.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Addr != "" {
		config.Addr = c.Addr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.Environment != "" {
		config.Environment = c.Environment
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.SessionTokenValidity != nil {
		config.SessionTokenValidity = c.SessionTokenValidity.Duration
	}
	if c.LockoutThreshold != nil {
		config.LockoutThreshold = *c.LockoutThreshold
	}
	if c.LockoutDuration != nil {
		config.LockoutDuration = c.LockoutDuration.Duration
	}
	if c.RateLimitMax != nil {
		config.RateLimitMax = *c.RateLimitMax
	}
	if c.RateLimitWindow != nil {
		config.RateLimitWindow = c.RateLimitWindow.Duration
	}
}
