package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/coin-runner/internal/config"
	"github.com/vovakirdan/coin-runner/internal/spectate"
)

func TestPortOf(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":23234", "23234"},
		{"localhost:2222", "2222"},
		{"garbage", "garbage"},
	}
	for _, tc := range tests {
		if got := portOf(tc.addr); got != tc.want {
			t.Errorf("portOf(%q) = %q, want %q", tc.addr, got, tc.want)
		}
	}
}

func TestApplyEnvFillsUnsetFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvDifficulty, "hard")
	t.Setenv(config.EnvSeed, "42")

	cmd := scoresCmd
	cmd.InheritedFlags()
	flags := rootCmd.PersistentFlags()
	defer func() {
		_ = flags.Set("difficulty", "")
		_ = flags.Set("seed", "0")
		flags.Lookup("difficulty").Changed = false
		flags.Lookup("seed").Changed = false
	}()

	if err := applyEnv(cmd, nil); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}
	if flagDifficulty != "hard" {
		t.Errorf("difficulty = %q, want hard", flagDifficulty)
	}
	if flagSeed != 42 {
		t.Errorf("seed = %d, want 42", flagSeed)
	}
}

func TestApplyEnvRejectsBadSeed(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvSeed, "not-a-number")
	scoresCmd.InheritedFlags()

	if err := applyEnv(scoresCmd, nil); err == nil {
		t.Fatal("expected error for invalid seed")
	}
}

func TestLoadRunnerConfigRejectsUnknownPreset(t *testing.T) {
	old := flagDifficulty
	flagDifficulty = "nightmare"
	defer func() { flagDifficulty = old }()

	if _, err := loadRunnerConfig(newLogger("test")); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
}

func TestWriteSchema(t *testing.T) {
	out := filepath.Join(t.TempDir(), "docs", "frame.schema.json")
	if err := writeSchema(out, spectate.FrameSchema()); err != nil {
		t.Fatalf("writeSchema: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if _, err := os.Stat(out + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be renamed away")
	}
}

func TestWriteJSONAddsNewline(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, map[string]int{"a": 1}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("}\n")) {
		t.Errorf("output = %q", buf.String())
	}
}
