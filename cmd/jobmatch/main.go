// Command jobmatch scores listings and runs job searches from JSON files.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "jobmatch",
	Short:         "Offline job matching tools",
	Long:          "jobmatch runs the match scorer, the fallback catalog and the job search orchestrator against JSON inputs.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var catalogPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to a job catalog YAML file (defaults to the embedded catalog)")
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func readJSON(path string, dst any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
