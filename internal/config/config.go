// Package config loads service configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Scoring   ScoringConfig
	Security  SecurityConfig
	LogLevel  slog.Level
	LogFormat string
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DataConfig struct {
	TransactionsPath        string
	ReferencePath           string
	UseDemoData             bool
	DemoSeed                int64
	DemoUsers               int
	DemoTransactionsPerUser int
}

type ScoringConfig struct {
	ActiveThreshold float64
	TargetScore     float64
}

type SecurityConfig struct {
	RateLimitPerSecond int
	RateLimitBurst     int
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Environment:  getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Data: DataConfig{
			TransactionsPath:        getEnv("DATA_TRANSACTIONS_PATH", "transactions.csv"),
			ReferencePath:           getEnv("DATA_MCC_PATH", "mcc_codes.csv"),
			UseDemoData:             getBoolEnv("DATA_USE_DEMO", true),
			DemoSeed:                int64(getIntEnv("DATA_DEMO_SEED", 42)),
			DemoUsers:               getIntEnv("DATA_DEMO_USERS", 25),
			DemoTransactionsPerUser: getIntEnv("DATA_DEMO_TX_PER_USER", 80),
		},
		Scoring: ScoringConfig{
			ActiveThreshold: getFloatEnv("SCORING_ACTIVE_THRESHOLD", 20.0),
			TargetScore:     getFloatEnv("SCORING_TARGET", 20.0),
		},
		Security: SecurityConfig{
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 20),
			RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 40),
		},
		LogLevel:  parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func parseLogLevel(raw string) slog.Level {
	switch raw {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
