package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coin-runner/internal/leaderboard"
	"github.com/vovakirdan/coin-runner/internal/runner"
)

var (
	flagDemoRuns     int
	flagDemoName     string
	flagDemoSpectate string
	flagDemoSave     bool
	flagDemoMaxTime  time.Duration
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Watch the autopilot play",
	Long: `Run the game headless with a simple autopilot. Each run is logged;
with --spectate every frame is streamed to websocket viewers at /ws and the
frame schema is served at /schema.json.

Examples:
  runner demo
  runner demo --runs 5 --seed 42
  runner demo --spectate :8080 --runs 0   # run until interrupted
  runner demo --save --name @autopilot`,
	Args: cobra.NoArgs,
	Run:  runDemo,
}

func init() {
	demoCmd.Flags().IntVar(&flagDemoRuns, "runs", 1, "Number of runs (0 = until interrupted)")
	demoCmd.Flags().StringVar(&flagDemoName, "name", "autopilot", "Player name recorded for demo runs")
	demoCmd.Flags().StringVar(&flagDemoSpectate, "spectate", "", "Stream frames to websocket spectators on this address")
	demoCmd.Flags().BoolVar(&flagDemoSave, "save", false, "Record demo scores in the leaderboard")
	demoCmd.Flags().DurationVar(&flagDemoMaxTime, "max-run", 5*time.Minute, "Stop a run that lasts longer than this")
}

func runDemo(_ *cobra.Command, _ []string) {
	logger := newLogger("runner-demo")

	runnerCfg, err := loadRunnerConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	opts := []runner.Option{runner.WithSource(runner.NewSource(flagSeed))}

	board := leaderboard.NewBoard(nil, logger, runnerCfg.Leaderboard.Limit)
	if flagDemoSave {
		var closeBoard func()
		board, _, closeBoard = openBoard(logger, runnerCfg.Leaderboard.Limit)
		defer closeBoard()
		opts = append(opts, runner.WithReporter(board))
	}

	engine := runner.NewEngine(runnerCfg, opts...)

	var publish func(runner.Snapshot)
	var publishOver func(runner.Result)
	if flagDemoSpectate != "" {
		hub, stop, hubErr := startSpectators(ctx, flagDemoSpectate, logger)
		if hubErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", hubErr)
			os.Exit(1)
		}
		defer stop()
		publish = hub.Publish
		publishOver = func(r runner.Result) {
			hub.PublishGameOver(r, board.Entries())
		}
	}

	engine.OnGameOver(func(r runner.Result) {
		logger.Info("run finished", "name", r.Name, "score", r.Score,
			"seconds", fmt.Sprintf("%.1f", r.ElapsedMs/1000), "ticks", r.Ticks)
		if publishOver != nil {
			publishOver(r)
		}
	})

	bot := runner.NewAutopilot()
	interval := time.Second / time.Duration(max(flagFPS, 1))

	for run := 1; flagDemoRuns <= 0 || run <= flagDemoRuns; run++ {
		if err := engine.Start(flagDemoName); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Debug("run started", "run", run)

		runCtx, cancel := context.WithTimeout(ctx, flagDemoMaxTime)
		driver := runner.NewDriver(engine, interval)
		driver.OnFrame(func(runner.TickResult) {
			snap := engine.Snapshot()
			if publish != nil {
				publish(snap)
			}
			if bot.ShouldJump(snap) {
				engine.RequestJump()
			}
		})

		err := driver.Run(runCtx)
		cancel()

		if ctx.Err() != nil {
			logger.Info("interrupted")
			engine.Stop()
			return
		}
		if err != nil {
			s := engine.State()
			logger.Warn("run timed out", "run", run, "score", s.Difficulty.Score)
		}
	}
	engine.Stop()

	if last, ok := engine.LastResult(); ok {
		fmt.Printf("Last run: %s scored %d\n", last.Name, last.Score)
	}
}

// portOf returns the port of a host:port address, or the address itself.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
