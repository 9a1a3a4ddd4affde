package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var serpAPIURL = "https://serpapi.com/search.json"

// Hit is one raw result from the search provider.
type Hit struct {
	Title        string        `json:"title"`
	CompanyName  string        `json:"company_name"`
	Location     string        `json:"location"`
	Description  string        `json:"description"`
	ApplyOptions []ApplyOption `json:"apply_options"`
}

// ApplyOption is a place where the job can be applied to.
type ApplyOption struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Searcher queries an external job search provider.
type Searcher interface {
	Search(ctx context.Context, query, location string) ([]Hit, error)
}

// SerpAPIClient searches Google Jobs through SerpAPI.
type SerpAPIClient struct {
	apiKey     string
	httpClient *http.Client
}

// NewSerpAPIClient returns a client, or an error when no API key is configured.
func NewSerpAPIClient(apiKey string, timeout time.Duration) (*SerpAPIClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("SERPAPI_KEY is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SerpAPIClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type serpResponse struct {
	JobsResults []Hit  `json:"jobs_results"`
	Error       string `json:"error"`
}

// Search runs a google_jobs query.
func (c *SerpAPIClient) Search(ctx context.Context, query, location string) ([]Hit, error) {
	params := url.Values{}
	params.Set("engine", "google_jobs")
	params.Set("q", query)
	if location != "" {
		params.Set("location", location)
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serpAPIURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("serpapi read: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("serpapi http status %d: %s", resp.StatusCode, truncate(strings.TrimSpace(string(body)), 200))
	}

	var parsed serpResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("serpapi response parse: %w", err)
	}
	if parsed.Error != "" && len(parsed.JobsResults) == 0 {
		return nil, fmt.Errorf("serpapi error: %s", parsed.Error)
	}
	return parsed.JobsResults, nil
}

var _ Searcher = (*SerpAPIClient)(nil)
