package main

import (
	"github.com/spf13/cobra"

	"interview-coach/internal/jobs"
)

var fallbackCmd = &cobra.Command{
	Use:   "fallback",
	Short: "List the fallback catalog jobs for candidate criteria",
	RunE:  runFallback,
}

var fallbackCriteria string

func init() {
	fallbackCmd.Flags().StringVarP(&fallbackCriteria, "criteria", "c", "", "Path to criteria JSON (required)")
	_ = fallbackCmd.MarkFlagRequired("criteria")

	rootCmd.AddCommand(fallbackCmd)
}

func runFallback(cmd *cobra.Command, _ []string) error {
	var criteria jobs.Criteria
	if err := readJSON(fallbackCriteria, &criteria); err != nil {
		return err
	}
	catalog, err := jobs.LoadCatalog(catalogPath)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), catalog.FallbackJobs(criteria))
}
