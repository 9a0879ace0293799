package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/coin-runner/internal/config"
)

var flagConfigResolved bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the game config",
	Long: `Print the built-in game config as YAML. Save it, edit it and pass it
back with --config. With --resolved the output reflects --config and
--difficulty instead.

Examples:
  runner config > runner.yaml
  runner config --resolved --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigResolved, "resolved", false, "Print the effective config after --config and --difficulty")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagConfigResolved {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := loadRunnerConfig(newLogger("runner"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
