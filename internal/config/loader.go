package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.runner/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a partial YAML only overrides
// the keys it names. The result is always validated.
func LoadRunner(customPath string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultRunnerConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Validate()
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("runner.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if decodeInto(data, &cfg) {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "runner.yaml")); err == nil {
		if decodeInto(data, &cfg) {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if !decodeInto(defaultRunnerYAML, &cfg) {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decodeInto unmarshals data over a copy of cfg and commits it only on success.
func decodeInto(data []byte, cfg *RunnerConfig) bool {
	candidate := *cfg
	if err := yaml.Unmarshal(data, &candidate); err != nil {
		return false
	}
	candidate.Validate()
	*cfg = candidate
	return true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".runner", "configs", filename)
}
