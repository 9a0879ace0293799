package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/coin-runner/internal/leaderboard"
	"github.com/vovakirdan/coin-runner/internal/platform/tui"
	"github.com/vovakirdan/coin-runner/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
	flagScoresClear bool
	flagScoresYes   bool
	flagScoresName  string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top scores (50 by default) and overall statistics.

Examples:
  runner scores
  runner scores --limit 10
  runner scores --player @ash
  runner scores --tui
  runner scores --clear --yes`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 0, "Number of scores to show (default from config)")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Interactive scrollable table")
	scoresCmd.Flags().StringVar(&flagScoresName, "player", "", "Only show scores recorded under this name")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded score")
	scoresCmd.Flags().BoolVar(&flagScoresYes, "yes", false, "Confirm --clear")
}

func runScores(_ *cobra.Command, _ []string) {
	logger := newLogger("runner")

	limit := flagScoresLimit
	if limit <= 0 {
		cfg, err := loadRunnerConfig(logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		limit = cfg.Leaderboard.Limit
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch {
	case flagScoresClear:
		if !flagScoresYes {
			fmt.Fprintln(os.Stderr, "Refusing to clear scores without --yes")
			os.Exit(1)
		}
		n, err := store.ClearScores(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Removed %d scores.\n", n)
		return

	case flagScoresTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		board := leaderboard.NewBoard(store, logger, limit)
		if err := tui.RunScoreboard(board, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var scores []storage.ScoreEntry
	if flagScoresName != "" {
		scores, err = store.PlayerScores(ctx, flagScoresName)
	} else {
		scores, err = store.TopScores(ctx, limit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Coin Runner")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-24s  %-8s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-24s  %-8s  %s\n", "----", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-24s  %-8d  %s\n", i+1, leaderboard.DisplayName(entry.Name), entry.Score, dateStr)
	}

	fmt.Println()
	if stats, err := store.Stats(ctx); err == nil {
		fmt.Printf("Best: %d   Runs: %d   Players: %d   Average: %.1f\n",
			stats.HighScore, stats.Games, stats.Players, stats.AvgScore)
	}
}
