package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment. It is
// loaded once in main and passed down; nothing else in the tree calls
// os.Getenv for these values.
type Config struct {
	Port        uint
	Mode        string
	FrontendURL string

	// Static identities. The application has exactly two: the admin and the
	// chef. Secrets may be plain values or bcrypt hashes.
	AdminAddress string
	AdminSecret  string
	ChefAddress  string
	ChefSecret   string

	// Distinct signing secrets per token class.
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	DBHost     string
	DBPort     uint
	DBName     string
	DBSecretID string
}

const (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Load reads .env if present and assembles the configuration. Missing
// identity or signing material is a startup error, not a runtime one.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        envUint("PORT", 8080),
		Mode:        os.Getenv("APP_MODE"),
		FrontendURL: os.Getenv("FRONTEND_URL"),

		AdminAddress: os.Getenv("ADMIN_ADDRESS"),
		AdminSecret:  os.Getenv("ADMIN_PASS"),
		ChefAddress:  os.Getenv("CHEF_ADDRESS"),
		ChefSecret:   os.Getenv("CHEF_PASS"),

		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:     envDuration("ACCESS_TOKEN_TTL", defaultAccessTTL),
		RefreshTokenTTL:    envDuration("REFRESH_TOKEN_TTL", defaultRefreshTTL),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envUint("DB_PORT", 5432),
		DBName:     os.Getenv("DB_NAME"),
		DBSecretID: os.Getenv("DB_SECRET_ID"),
	}

	if cfg.AdminAddress == "" || cfg.AdminSecret == "" {
		return nil, fmt.Errorf("ADMIN_ADDRESS and ADMIN_PASS must be set")
	}
	if cfg.ChefAddress == "" || cfg.ChefSecret == "" {
		return nil, fmt.Errorf("CHEF_ADDRESS and CHEF_PASS must be set")
	}
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, fmt.Errorf("access and refresh signing secrets must differ")
	}

	return cfg, nil
}

func envUint(key string, def uint) uint {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return def
	}
	return uint(n)
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
