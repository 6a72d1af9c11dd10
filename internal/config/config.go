package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP_PORT string `env:"HTTP_PORT"`
	LOG_MODE  string `env:"LOG_MODE"`

	SEED_DEMO                 bool   `env:"SEED_DEMO"`
	ID_STRATEGY               string `env:"ID_STRATEGY"`
	REQUIRE_PROJECT           bool   `env:"REQUIRE_PROJECT"`
	REQUIRE_TRANSPORT_COMPANY bool   `env:"REQUIRE_TRANSPORT_COMPANY"`

	KAFKA_BROKERS      string `env:"KAFKA_BROKERS"`
	KAFKA_TOPIC        string `env:"KAFKA_TOPIC"`
	KAFKA_DRAFTS_TOPIC string `env:"KAFKA_DRAFTS_TOPIC"`
	KAFKA_GROUP_ID     string `env:"KAFKA_GROUP_ID"`

	SHUTDOWN_TIMEOUT time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// LoadConfig reads the environment, after a .env file in the working directory if there is one.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTP_PORT:          getEnv("HTTP_PORT", "8080"),
		LOG_MODE:           getEnv("LOG_MODE", "development"),
		ID_STRATEGY:        getEnv("ID_STRATEGY", "sequence"),
		KAFKA_BROKERS:      os.Getenv("KAFKA_BROKERS"),
		KAFKA_TOPIC:        getEnv("KAFKA_TOPIC", "shipment-events"),
		KAFKA_DRAFTS_TOPIC: getEnv("KAFKA_DRAFTS_TOPIC", "shipment-drafts"),
		KAFKA_GROUP_ID:     getEnv("KAFKA_GROUP_ID", "digital-link"),
	}

	var err error
	if cfg.SEED_DEMO, err = getBool("SEED_DEMO", true); err != nil {
		return nil, err
	}
	if cfg.REQUIRE_PROJECT, err = getBool("REQUIRE_PROJECT", true); err != nil {
		return nil, err
	}
	if cfg.REQUIRE_TRANSPORT_COMPANY, err = getBool("REQUIRE_TRANSPORT_COMPANY", true); err != nil {
		return nil, err
	}

	cfg.SHUTDOWN_TIMEOUT = 10 * time.Second
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		if cfg.SHUTDOWN_TIMEOUT, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
	}

	switch cfg.ID_STRATEGY {
	case "sequence", "uuid":
	default:
		return nil, fmt.Errorf("ID_STRATEGY must be sequence or uuid, got %q", cfg.ID_STRATEGY)
	}

	return cfg, nil
}

func (c *Config) KafkaEnabled() bool {
	return c.KAFKA_BROKERS != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
