package config

import (
	"os"
	"strconv"
)

// Config holds the specific configuration for one Modemgate instance.
// The daemon is configured entirely through environment variables.
type Config struct {
	Modem        ModemConfig
	Redis        RedisConfig
	PollInterval int // seconds between modem polls
}

type ModemConfig struct {
	Hostname   string
	Username   string
	Password   string
	Encryption string // credential hash: "MD5" or "SHA512"
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	Topic    string // base channel metrics are published under
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() *Config {
	return &Config{
		Modem: ModemConfig{
			Encryption: "SHA512",
		},
		Redis: RedisConfig{
			Topic: "modemgate/docsis",
		},
		PollInterval: 30,
	}
}

// FromEnv overlays environment variables onto the defaults. Unset variables
// keep their default; malformed integers fall back to the default too.
func FromEnv() *Config {
	cfg := DefaultConfig()

	setString(&cfg.Modem.Hostname, "MODEM_HOSTNAME")
	setString(&cfg.Modem.Username, "MODEM_USERNAME")
	setString(&cfg.Modem.Password, "MODEM_PASSWORD")
	setString(&cfg.Modem.Encryption, "MODEM_ENCRYPTION")
	setInt(&cfg.PollInterval, "POLL_INTERVAL")

	setString(&cfg.Redis.Address, "REDIS_ADDRESS")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")
	setString(&cfg.Redis.Topic, "METRICS_TOPIC")

	return cfg
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
