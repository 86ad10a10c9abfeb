// Package config builds the immutable runtime configuration from
// environment variables. It is read once in main and passed by value
// into constructors; nothing else in the codebase touches os.Getenv.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

var errMissingSecret = errors.New("JWT_SECRET is not set")

// Config holds all runtime settings for the Solarne backend.
//
// Fields:
//   - Addr: HTTP bind address.
//   - DBHost/DBUser/DBPassword/DBName: PostgreSQL connection settings.
//   - JWTSecret: HMAC secret for signing tokens (HS256). Required.
//   - TokenTTLMinutes: bearer token lifetime.
//   - AdminEmail/AdminPassword: bootstrap admin credentials; both optional,
//     seeding only happens when both are set and the user table is empty.
//     AdminEmail also drives the admin-only route policy.
//   - BcryptCost: work factor for password hashing.
//   - RedisURL: optional listing cache; empty disables caching.
//   - LeadWebhookURL: optional webhook for new-contact alerts.
type Config struct {
	Addr            string
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	JWTSecret       string
	TokenTTLMinutes int
	AdminEmail      string
	AdminPassword   string
	BcryptCost      int
	RedisURL        string
	LeadWebhookURL  string
}

// Load reads the configuration from the environment. A missing JWT
// secret is a hard error: the process must not come up able to mint
// unverifiable tokens.
func Load() (Config, error) {
	cfg := Config{
		Addr:            getEnv("ADDR", ":8080"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBUser:          getEnv("DB_USER", "solarne_user"),
		DBPassword:      getEnv("DB_PASSWORD", "solarne_pass"),
		DBName:          getEnv("DB_NAME", "solarne"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTLMinutes: 60,
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		BcryptCost:      bcrypt.DefaultCost,
		RedisURL:        os.Getenv("REDIS_URL"),
		LeadWebhookURL:  os.Getenv("LEAD_WEBHOOK_URL"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errMissingSecret
	}

	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		ttl, err := strconv.Atoi(v)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("invalid TOKEN_TTL_MINUTES %q", v)
		}
		cfg.TokenTTLMinutes = ttl
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return Config{}, fmt.Errorf("invalid BCRYPT_COST %q", v)
		}
		cfg.BcryptCost = cost
	}

	return cfg, nil
}

// DSN renders the lib/pq connection string.
func (c Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=disable"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
