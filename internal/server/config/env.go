package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variables understood by the server:
//
//	ADDRESS            bind address (e.g. ":5000")
//	DATABASE_DSN       PostgreSQL DSN (required)
//	SECRET_KEY         HMAC secret for session tokens (required)
//	BCRYPT_COST        bcrypt cost factor
//	APP_ENV            "production" enables Secure session cookies
//	TOKEN_VALIDITY_MIN session token lifetime, minutes
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.Addr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("APP_ENV"); ok {
		config.Environment = v
	}
	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		if cost, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = cost
		}
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY_MIN"); ok {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			config.SessionTokenValidity = time.Duration(minutes) * time.Minute
		}
	}
}
