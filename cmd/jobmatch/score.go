package main

import (
	"github.com/spf13/cobra"

	"interview-coach/internal/jobs"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one listing against candidate criteria",
	RunE:  runScore,
}

var (
	scoreCriteria string
	scoreListing  string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreCriteria, "criteria", "c", "", "Path to criteria JSON (required)")
	scoreCmd.Flags().StringVarP(&scoreListing, "listing", "l", "", "Path to listing JSON (required)")
	_ = scoreCmd.MarkFlagRequired("criteria")
	_ = scoreCmd.MarkFlagRequired("listing")

	rootCmd.AddCommand(scoreCmd)
}

type scoreOutput struct {
	MatchScore int `json:"match_score"`
}

func runScore(cmd *cobra.Command, _ []string) error {
	var criteria jobs.Criteria
	if err := readJSON(scoreCriteria, &criteria); err != nil {
		return err
	}
	var listing jobs.Listing
	if err := readJSON(scoreListing, &listing); err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), scoreOutput{MatchScore: jobs.Score(listing, criteria)})
}
