// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/crypto/bcrypt"
)

// Config is the complete runtime configuration.
type Config struct {
	// DBPath is the SQLite file backing the keyed store.
	DBPath string `env:"POCKETLEDGER_DB_PATH" env-default:"./data/pocketledger.db"`

	// CacheSize bounds the read-through cache in entries. Zero disables it.
	CacheSize int `env:"POCKETLEDGER_CACHE_SIZE" env-default:"128"`

	// AuthLatency is the artificial delay on register and sign-in.
	AuthLatency time.Duration `env:"POCKETLEDGER_AUTH_LATENCY" env-default:"1s"`

	BcryptCost int `env:"POCKETLEDGER_BCRYPT_COST" env-default:"10"`

	// AMQPURL enables publishing notifications to RabbitMQ when set.
	AMQPURL      string `env:"POCKETLEDGER_AMQP_URL"`
	AMQPExchange string `env:"POCKETLEDGER_AMQP_EXCHANGE" env-default:"pocketledger.notifications"`

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

// Load reads the configuration from environment variables and defaults,
// then validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("db path must not be empty"))
	}
	if c.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("cache size must be >= 0 (got %d)", c.CacheSize))
	}
	if c.AuthLatency < 0 {
		errs = append(errs, fmt.Errorf("auth latency must be >= 0 (got %s)", c.AuthLatency))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost must be between %d and %d (got %d)", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost))
	}
	if c.AMQPURL != "" && strings.TrimSpace(c.AMQPExchange) == "" {
		errs = append(errs, errors.New("amqp exchange must be set when amqp url is"))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log level must be debug, info, warn or error (got %q)", c.LogLevel))
	}
	return errors.Join(errs...)
}
