package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"largesudoku/pkg/constants"
)

type Config struct {
	Port         string
	SolveTimeout time.Duration
	Redundant    bool
	LogLevel     string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	timeoutMS, err := getEnvInt("SOLVER_TIMEOUT_MS", 30000)
	if err != nil {
		return nil, err
	}
	redundant, err := getEnvBool("SOLVER_REDUNDANT", true)
	if err != nil {
		return nil, err
	}
	return &Config{
		Port:         getEnv("PORT", constants.DefaultPort),
		SolveTimeout: time.Duration(timeoutMS) * time.Millisecond,
		Redundant:    redundant,
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.Wrapf(err, "%s must be an integer", key)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, errors.Wrapf(err, "%s must be a boolean", key)
	}
	return b, nil
}
