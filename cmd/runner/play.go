package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/coin-runner/internal/core"
	"github.com/vovakirdan/coin-runner/internal/platform/tui"
	"github.com/vovakirdan/coin-runner/internal/runner"
)

var (
	flagName         string
	flagPlaySpectate string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Enter a name (an @handle works too) and start running.

Controls:
  Space/Up/W - Jump (once more in the air)
  R          - Run again (after game over)
  Esc        - Change name (after game over)
  ?          - Toggle help
  Ctrl+S     - Save a text screenshot to ~/.runner/screenshots
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower start, gentler speed-up, lower barriers
  normal - The classic curve
  hard   - Faster start, steeper speed-up, tall barriers sooner
  fixed  - Speed never increases

Examples:
  runner play
  runner play --name @ash
  runner play --difficulty hard
  runner play --spectate :8080`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Pre-fill the player name")
	playCmd.Flags().StringVar(&flagPlaySpectate, "spectate", "", "Also stream the run to websocket spectators on this address")
}

func runPlay(cmd *cobra.Command, _ []string) {
	logger := newLogger("runner")

	runnerCfg, err := loadRunnerConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed

	board, _, closeBoard := openBoard(logger, runnerCfg.Leaderboard.Limit)

	var pub tui.Publisher
	if flagPlaySpectate != "" {
		hub, stop, hubErr := startSpectators(cmd.Context(), flagPlaySpectate, logger)
		if hubErr != nil {
			closeBoard()
			fmt.Fprintf(os.Stderr, "Error: %v\n", hubErr)
			os.Exit(1)
		}
		defer stop()
		pub = hub
	}

	engine := runner.NewEngine(runnerCfg,
		runner.WithSource(runner.NewSource(flagSeed)),
		runner.WithReporter(board),
	)

	runErr := tui.Run(engine, board, pub, cfg, flagName)
	closeBoard()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	if r, ok := engine.LastResult(); ok {
		fmt.Printf("Last run: %s scored %d\n", r.Name, r.Score)
	}
}
