// runner is a side-scrolling arcade runner for the terminal: jump barriers,
// collect coins and climb the shared leaderboard.
//
// Usage:
//
//	runner play              - Play in the terminal
//	runner scores            - Show the leaderboard
//	runner serve             - Start SSH server for remote play
//	runner demo              - Watch the autopilot play (optionally over websocket)
//	runner schema            - Print the spectator frame JSON schema
//	runner config            - Print the default game config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.runner/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
//
// RUNNER_DB, RUNNER_CONFIG, RUNNER_DIFFICULTY, RUNNER_SEED and
// RUNNER_LOG_LEVEL (also read from ./.env) replace the defaults of the
// matching flags.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/coin-runner/internal/config"
	"github.com/vovakirdan/coin-runner/internal/leaderboard"
	"github.com/vovakirdan/coin-runner/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Coin Runner - jump barriers and grab coins in your terminal",
	Long: `Coin Runner is a side-scrolling arcade runner. The world scrolls faster
every ten seconds; jump (twice, if you must) over barriers and collect coins.
One hit ends the run and your score goes to the leaderboard.

Available commands:
  play     - Play in this terminal
  scores   - View the leaderboard
  serve    - Start SSH server for remote play
  demo     - Headless autopilot run, optionally streamed to spectators
  schema   - JSON schema of spectator frames
  config   - Print the default game config

Examples:
  runner play
  runner play --difficulty hard
  runner scores
  runner serve --ssh :2222
  runner demo --spectate :8080`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnv,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runner/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(configCmd)
}

// applyEnv loads ./.env and lets environment variables replace the defaults
// of flags the user did not set explicitly.
func applyEnv(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("cannot load .env: %w", err)
	}

	flags := cmd.Flags()
	envFlags := []struct {
		flag string
		env  string
	}{
		{"db", config.EnvDB},
		{"config", config.EnvConfig},
		{"difficulty", config.EnvDifficulty},
		{"log-level", config.EnvLogLevel},
		{"seed", config.EnvSeed},
	}
	for _, ef := range envFlags {
		if flags.Lookup(ef.flag) == nil || flags.Changed(ef.flag) {
			continue
		}
		v := config.EnvString(ef.env, "")
		if v == "" {
			continue
		}
		if ef.flag == "seed" {
			if _, err := config.EnvInt64(ef.env, 0); err != nil {
				return err
			}
		}
		if err := flags.Set(ef.flag, v); err != nil {
			return fmt.Errorf("invalid %s: %w", ef.env, err)
		}
	}
	return nil
}

// newLogger builds the process logger at the requested level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadRunnerConfig reads the game config and applies the difficulty preset.
func loadRunnerConfig(logger *log.Logger) (config.RunnerConfig, error) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
		logger.Debug("difficulty preset applied", "preset", preset)
	}
	return cfg, nil
}

// openBoard opens the score store and wraps it in a leaderboard. A store that
// cannot be opened is logged and replaced by an in-memory-only board; the
// returned close function is always safe to call.
func openBoard(logger *log.Logger, limit int) (*leaderboard.Board, *storage.Store, func()) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "path", flagDBPath, "error", err)
		board := leaderboard.NewBoard(nil, logger, limit)
		return board, nil, board.Wait
	}

	board := leaderboard.NewBoard(store, logger, limit)
	return board, store, func() {
		board.Wait()
		if err := store.Close(); err != nil {
			logger.Warn("cannot close scores database", "error", err)
		}
	}
}
