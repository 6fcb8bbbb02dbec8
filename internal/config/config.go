package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env  string
	Port string

	JWTSecret string

	// Backend selects the snapshot persister: "redis" or "file".
	Backend   string
	RedisURL  string
	RedisPass string
	RedisDB   int
	DataFile  string

	StartingBalance float64
	DailyBonus      float64
	MarketTickEvery time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:             envDefault("APP_ENV", "development"),
		Port:            envDefault("PORT", "8080"),
		JWTSecret:       strings.TrimSpace(os.Getenv("JWT_SECRET")),
		Backend:         envDefault("STORE_BACKEND", "file"),
		RedisURL:        envDefault("REDIS_URL", "localhost:6379"),
		RedisPass:       os.Getenv("REDIS_PASS"),
		RedisDB:         envIntDefault("REDIS_DB", 0),
		DataFile:        envDefault("DATA_FILE", "bankdaten_secure.json"),
		StartingBalance: envFloatDefault("STARTING_BALANCE", 100),
		DailyBonus:      envFloatDefault("DAILY_BONUS", 250),
		MarketTickEvery: envDurationDefault("MARKET_TICK_EVERY", time.Minute),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	switch cfg.Backend {
	case "redis", "file":
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Backend)
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envIntDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloatDefault(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
