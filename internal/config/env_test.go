package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvMissingFile(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("LoadEnv() with missing file = %v", err)
	}
}

func TestLoadEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "RUNNER_TEST_FROM_FILE=file\nRUNNER_TEST_PRESET=file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RUNNER_TEST_PRESET", "shell")
	t.Setenv("RUNNER_TEST_FROM_FILE", "")
	os.Unsetenv("RUNNER_TEST_FROM_FILE")

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv() = %v", err)
	}

	if got := os.Getenv("RUNNER_TEST_FROM_FILE"); got != "file" {
		t.Errorf("RUNNER_TEST_FROM_FILE = %q, expected value from file", got)
	}
	if got := os.Getenv("RUNNER_TEST_PRESET"); got != "shell" {
		t.Errorf("RUNNER_TEST_PRESET = %q, shell value should win", got)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv(EnvDB, "/tmp/scores.db")
	t.Setenv(EnvSeed, "42")
	t.Setenv(EnvLogLevel, "")

	if got := EnvString(EnvDB, "x"); got != "/tmp/scores.db" {
		t.Errorf("EnvString() = %q", got)
	}
	if got := EnvString(EnvLogLevel, "info"); got != "info" {
		t.Errorf("EnvString() fallback = %q", got)
	}
	if got, err := EnvInt64(EnvSeed, 0); err != nil || got != 42 {
		t.Errorf("EnvInt64() = %d, %v", got, err)
	}

	t.Setenv(EnvSeed, "forty-two")
	got, err := EnvInt64(EnvSeed, 7)
	if err == nil {
		t.Error("EnvInt64() malformed: expected error")
	}
	if got != 7 {
		t.Errorf("EnvInt64() malformed = %d, expected fallback", got)
	}
}
