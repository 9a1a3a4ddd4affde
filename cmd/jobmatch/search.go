package main

import (
	"github.com/spf13/cobra"

	"interview-coach/internal/ats"
	"interview-coach/internal/jobs"
	"interview-coach/internal/resumes"
	"interview-coach/internal/shared/config"
	"interview-coach/internal/shared/telemetry"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a job search for a parsed resume and its ATS analysis",
	Long:  "Builds criteria from the resume and ATS analysis, queries SerpAPI when SERPAPI_KEY is set and falls back to the catalog otherwise.",
	RunE:  runSearch,
}

var (
	searchResume   string
	searchATS      string
	searchScore    int
	searchLocation string
	searchOffline  bool
)

func init() {
	searchCmd.Flags().StringVarP(&searchResume, "resume", "r", "", "Path to resume JSON (required)")
	searchCmd.Flags().StringVarP(&searchATS, "ats", "a", "", "Path to ATS analysis JSON (required)")
	searchCmd.Flags().IntVarP(&searchScore, "interview-score", "s", 0, "Interview score between 0 and 100")
	searchCmd.Flags().StringVar(&searchLocation, "location", "", "Search location (defaults to JOB_SEARCH_LOCATION)")
	searchCmd.Flags().BoolVar(&searchOffline, "offline", false, "Skip the search provider and use the catalog only")
	_ = searchCmd.MarkFlagRequired("resume")
	_ = searchCmd.MarkFlagRequired("ats")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	var resume resumes.ResumeData
	if err := readJSON(searchResume, &resume); err != nil {
		return err
	}
	var analysis ats.Analysis
	if err := readJSON(searchATS, &analysis); err != nil {
		return err
	}

	cfg := config.Load()
	_ = telemetry.Configure(cfg.LogLevel, "console")

	path := catalogPath
	if path == "" {
		path = cfg.JobCatalogPath
	}
	catalog, err := jobs.LoadCatalog(path)
	if err != nil {
		return err
	}

	var searcher jobs.Searcher
	if !searchOffline && cfg.SerpAPIKey != "" {
		client, err := jobs.NewSerpAPIClient(cfg.SerpAPIKey, cfg.JobSearchTimeout)
		if err != nil {
			return err
		}
		searcher = client
	}

	svc := jobs.NewService(catalog, searcher, nil, cfg.JobSearchLocation, cfg.JobSearchTimeout)
	result := svc.Search(cmd.Context(), jobs.SearchRequest{
		Resume:         resume,
		ATS:            analysis.Normalize(),
		InterviewScore: clampScore(searchScore),
		Location:       searchLocation,
	})
	return writeJSON(cmd.OutOrStdout(), result)
}

func clampScore(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
