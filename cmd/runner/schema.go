package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/coin-runner/internal/spectate"
)

var flagSchemaOut string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the spectator frame JSON schema",
	Long: `Print the JSON schema describing the frames sent to websocket
spectators, or write it to a file with --out.

Examples:
  runner schema
  runner schema --out docs/frame.schema.json`,
	Args: cobra.NoArgs,
	Run:  runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&flagSchemaOut, "out", "", "Write the schema to this path instead of stdout")
}

func runSchema(_ *cobra.Command, _ []string) {
	schema := spectate.FrameSchema()

	if flagSchemaOut == "" {
		if err := writeJSON(os.Stdout, schema); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := writeSchema(flagSchemaOut, schema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Schema written to %s\n", flagSchemaOut)
}

// writeJSON encodes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := writeJSON(f, schema); err != nil {
		f.Close()
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
