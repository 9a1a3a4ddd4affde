package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"interview-coach/internal/profiles"
	"interview-coach/internal/shared/metrics"
	"interview-coach/internal/shared/telemetry"
)

const (
	defaultLocation       = "United States"
	defaultSearchTimeout  = 10 * time.Second
	maxProviderResults    = 8
	maxDescriptionRunes   = 200
	liveSource            = "Google Jobs"
	missingApplyLinkValue = "#"
)

// ProfileSource supplies profile-derived criteria for a user.
type ProfileSource interface {
	GetPersonalizedJobCriteria(email string) (profiles.PersonalizedCriteria, bool)
}

// Service orchestrates criteria building, live search and the fallback catalog.
type Service struct {
	Catalog  *Catalog
	Searcher Searcher
	Profiles ProfileSource
	Location string
	Timeout  time.Duration
}

// NewService constructs a Service. searcher and profiles may be nil.
func NewService(catalog *Catalog, searcher Searcher, profiles ProfileSource, location string, timeout time.Duration) *Service {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if strings.TrimSpace(location) == "" {
		location = defaultLocation
	}
	if timeout <= 0 {
		timeout = defaultSearchTimeout
	}
	return &Service{
		Catalog:  catalog,
		Searcher: searcher,
		Profiles: profiles,
		Location: location,
		Timeout:  timeout,
	}
}

// Criteria builds the scorer input for a request, merging profile data when available.
func (s *Service) Criteria(req SearchRequest) Criteria {
	criteria := BuildCriteria(req.Resume, req.ATS, req.InterviewScore, s.Catalog.TechKeywords)
	if email := strings.TrimSpace(req.UserEmail); email != "" && s.Profiles != nil {
		if pc, ok := s.Profiles.GetPersonalizedJobCriteria(email); ok {
			criteria = criteria.WithProfile(pc)
		}
	}
	return criteria
}

// Search never fails: provider problems resolve to the fallback catalog.
func (s *Service) Search(ctx context.Context, req SearchRequest) SearchResult {
	started := time.Now()
	metrics.IncJobSearch()
	defer func() {
		metrics.ObserveJobSearchDurationMs(float64(time.Since(started).Milliseconds()))
	}()

	criteria := s.Criteria(req)
	location := strings.TrimSpace(req.Location)
	if location == "" {
		location = s.Location
	}

	listings, reason := s.searchLive(ctx, criteria, location)
	if reason != "" {
		metrics.IncJobFallback()
		jobs := s.Catalog.FallbackJobs(criteria)
		telemetry.Info("jobs.search.fallback", map[string]any{
			"reason":          reason,
			"tier":            s.Catalog.TierFor(criteria.InterviewScore).Name,
			"count":           len(jobs),
			"has_user":        req.UserEmail != "",
			"interview_score": criteria.InterviewScore,
		})
		return SearchResult{
			Jobs:         jobs,
			Personalized: len(jobs) > 0 && jobs[0].Personalized,
			Source:       SourceFallback,
		}
	}

	metrics.IncJobSearchLive()
	telemetry.Info("jobs.search.live", map[string]any{
		"count":    len(listings),
		"location": location,
		"has_user": req.UserEmail != "",
	})
	return SearchResult{Jobs: listings, Personalized: true, Source: SourceLive}
}

// searchLive returns scored provider listings, or a non-empty reason to fall back.
func (s *Service) searchLive(ctx context.Context, criteria Criteria, location string) ([]Listing, string) {
	if s.Searcher == nil {
		return nil, "provider_unconfigured"
	}
	query := BuildQuery(criteria)

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	hits, err := s.callSearcher(ctx, query, location)
	if err != nil {
		telemetry.Warn("jobs.search.provider_failed", map[string]any{
			"query": query,
			"error": err,
		})
		return nil, "provider_error"
	}
	if len(hits) == 0 {
		return nil, "no_results"
	}

	if len(hits) > maxProviderResults {
		hits = hits[:maxProviderResults]
	}
	listings := make([]Listing, 0, len(hits))
	for _, hit := range hits {
		listing := Listing{
			Title:        hit.Title,
			Company:      hit.CompanyName,
			Location:     hit.Location,
			Description:  truncate(hit.Description, maxDescriptionRunes),
			ApplyLink:    applyLink(hit.ApplyOptions),
			Source:       liveSource,
			Personalized: true,
		}
		listing.MatchScore = Score(listing, criteria)
		listings = append(listings, listing)
	}

	sortByScore(listings)
	if len(listings) > maxResults {
		listings = listings[:maxResults]
	}
	return listings, ""
}

func (s *Service) callSearcher(ctx context.Context, query, location string) (hits []Hit, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("search provider panic: %v", r)
		}
	}()
	return s.Searcher.Search(ctx, query, location)
}

// FallbackJobs exposes the catalog directly for callers that already hold criteria.
func (s *Service) FallbackJobs(criteria Criteria) []Listing {
	return s.Catalog.FallbackJobs(criteria)
}

func applyLink(options []ApplyOption) string {
	if len(options) == 0 {
		return missingApplyLinkValue
	}
	if link := strings.TrimSpace(options[0].Link); link != "" {
		return link
	}
	return missingApplyLinkValue
}

// truncate shortens s to max runes followed by "..." when it is longer.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
