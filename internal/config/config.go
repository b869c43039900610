package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	AppEnv    string `validate:"required"`
	LogLevel  string `validate:"oneof=debug info warn warning error"`
	LogFormat string `validate:"oneof=json text"`

	Backend  string `validate:"oneof=memory redis postgres"`
	CartKey  string `validate:"required"`
	Currency string `validate:"required,iso4217"`

	RedisAddr string `validate:"required_if=Backend redis"`
	PGDSN     string `validate:"required_if=Backend postgres"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	cfg := Config{
		AppEnv:    getEnv("APP_ENV", "dev"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		Backend:   getEnv("CART_BACKEND", BackendMemory),
		CartKey:   getEnv("CART_KEY", "@GoMarketplace:products"),
		Currency:  getEnv("CART_CURRENCY", "USD"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		PGDSN:     os.Getenv("PG_DSN"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
