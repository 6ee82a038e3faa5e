package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ServiceName string

	ServerPort int

	// Empty DATABASE_URL selects the in-memory store. A sqlite path or
	// postgres DSN selects the persistent store.
	DatabaseURL string

	JWTSecret []byte

	KafkaBrokers []string

	LogLevel string

	// SeedData fills an empty store with the demo catalog and accounts.
	SeedData bool
}

func Load() Config {
	return Config{
		ServiceName:  EnvDefault("SERVICE_NAME", "storefront"),
		ServerPort:   EnvIntDefault("SERVER_PORT", 8080),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    []byte(EnvDefault("JWT_SECRET", "storefront-demo-secret")),
		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		SeedData:     EnvBoolDefault("SEED_DATA", true),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
