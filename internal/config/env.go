package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that seed CLI flag defaults.
const (
	EnvDB         = "RUNNER_DB"
	EnvConfig     = "RUNNER_CONFIG"
	EnvLogLevel   = "RUNNER_LOG_LEVEL"
	EnvDifficulty = "RUNNER_DIFFICULTY"
	EnvSeed       = "RUNNER_SEED"
)

// LoadEnv loads variables from the given .env files (default ".env") without
// overriding variables already set. Missing files are not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// EnvString returns the variable's value, or fallback when unset or empty.
func EnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnvInt64 returns the variable parsed as an integer, or fallback when unset.
func EnvInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback, fmt.Errorf("config: invalid %s: %w", key, err)
	}
	return n, nil
}
