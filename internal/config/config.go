package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string

	JWTSecret string

	// ReminderHour is the local hour (0-23) at which the daily reminder pass
	// fires. All goals share the server clock; goal timezones are stored but
	// not consulted for trigger timing.
	ReminderHour          int
	ReminderCheckInterval time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	checkInterval, err := time.ParseDuration(getEnv("REMINDER_CHECK_INTERVAL", "1m"))
	if err != nil {
		checkInterval = time.Minute
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret: getEnvOrPanic("JWT_SECRET"),

		ReminderHour:          getEnvInt("REMINDER_HOUR", 8),
		ReminderCheckInterval: checkInterval,
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}
