package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-coach/internal/ats"
	"interview-coach/internal/profiles"
	"interview-coach/internal/resumes"
)

type searchFunc func(ctx context.Context, query, location string) ([]Hit, error)

type fakeSearcher struct {
	mu       sync.Mutex
	fn       searchFunc
	calls    int
	query    string
	location string
}

func (f *fakeSearcher) Search(ctx context.Context, query, location string) ([]Hit, error) {
	f.mu.Lock()
	f.calls++
	f.query = query
	f.location = location
	f.mu.Unlock()
	return f.fn(ctx, query, location)
}

type fakeProfiles map[string]profiles.PersonalizedCriteria

func (f fakeProfiles) GetPersonalizedJobCriteria(email string) (profiles.PersonalizedCriteria, bool) {
	pc, ok := f[email]
	return pc, ok
}

func sampleRequest() SearchRequest {
	return SearchRequest{
		Resume: resumes.ResumeData{
			Name:       "Ada",
			Skills:     []string{"Golang", "Kubernetes", "Docker"},
			Experience: []resumes.ExperienceEntry{{Title: "Engineer", Duration: "4 years"}},
			Education:  []resumes.EducationEntry{{Degree: "Bachelor of Science"}},
		},
		ATS: ats.Analysis{
			ATSScore:       80,
			BestRole:       "Backend Engineer",
			SuggestedRoles: []string{"Backend Engineer", "Platform Engineer"},
		},
		InterviewScore: 75,
	}
}

func hits(n int) []Hit {
	out := make([]Hit, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Hit{
			Title:        fmt.Sprintf("Engineer %d", i),
			CompanyName:  fmt.Sprintf("Company %d", i),
			Location:     "Remote",
			Description:  "Work on things",
			ApplyOptions: []ApplyOption{{Link: fmt.Sprintf("https://jobs.example/%d", i)}},
		})
	}
	return out
}

func TestSearchWithoutProviderUsesFallback(t *testing.T) {
	svc := NewService(nil, nil, nil, "", 0)
	res := svc.Search(context.Background(), sampleRequest())

	assert.Equal(t, SourceFallback, res.Source)
	require.Len(t, res.Jobs, 5)
	assert.True(t, res.Personalized)
	for _, job := range res.Jobs {
		assert.Equal(t, fallbackSource, job.Source)
	}
}

func TestSearchFallsBackOnProviderFailure(t *testing.T) {
	tests := []struct {
		name string
		fn   searchFunc
	}{
		{name: "error", fn: func(ctx context.Context, q, l string) ([]Hit, error) { return nil, errors.New("quota exceeded") }},
		{name: "no results", fn: func(ctx context.Context, q, l string) ([]Hit, error) { return []Hit{}, nil }},
		{name: "panic", fn: func(ctx context.Context, q, l string) ([]Hit, error) { panic("nil map") }},
		{name: "timeout", fn: func(ctx context.Context, q, l string) ([]Hit, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &fakeSearcher{fn: tt.fn}
			svc := NewService(nil, searcher, nil, "", 20*time.Millisecond)

			res := svc.Search(context.Background(), sampleRequest())
			assert.Equal(t, 1, searcher.calls)
			assert.Equal(t, SourceFallback, res.Source)
			assert.Len(t, res.Jobs, 5)
		})
	}
}

func TestSearchEmptyQueryStillCallsProvider(t *testing.T) {
	searcher := &fakeSearcher{fn: func(ctx context.Context, q, l string) ([]Hit, error) { return nil, nil }}
	svc := NewService(nil, searcher, nil, "", 0)

	res := svc.Search(context.Background(), SearchRequest{})
	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, "", searcher.query)
	assert.Equal(t, SourceFallback, res.Source)
	assert.False(t, res.Personalized)

	searcher.fn = func(ctx context.Context, q, l string) ([]Hit, error) { return hits(3), nil }
	res = svc.Search(context.Background(), SearchRequest{})
	assert.Equal(t, 2, searcher.calls)
	assert.Equal(t, SourceLive, res.Source)
	assert.Len(t, res.Jobs, 3)
}

func TestSearchLive(t *testing.T) {
	searcher := &fakeSearcher{fn: func(ctx context.Context, q, l string) ([]Hit, error) { return hits(10), nil }}
	svc := NewService(nil, searcher, nil, "", 0)

	res := svc.Search(context.Background(), sampleRequest())
	assert.Equal(t, "Backend Engineer Golang Kubernetes", searcher.query)
	assert.Equal(t, "United States", searcher.location)
	assert.Equal(t, SourceLive, res.Source)
	assert.True(t, res.Personalized)
	require.Len(t, res.Jobs, 5)

	for i, job := range res.Jobs {
		assert.Equal(t, "Google Jobs", job.Source)
		assert.True(t, job.Personalized)
		assert.True(t, strings.HasPrefix(job.ApplyLink, "https://jobs.example/"))
		if i > 0 {
			assert.GreaterOrEqual(t, res.Jobs[i-1].MatchScore, job.MatchScore)
		}
		// only the first eight provider hits are considered
		assert.NotEqual(t, "Company 8", job.Company)
		assert.NotEqual(t, "Company 9", job.Company)
	}
}

func TestSearchLiveMapsHits(t *testing.T) {
	long := strings.Repeat("é", 250)
	searcher := &fakeSearcher{fn: func(ctx context.Context, q, l string) ([]Hit, error) {
		return []Hit{
			{Title: "Senior Backend Engineer", CompanyName: "Acme", Description: long},
			{Title: "Backend Engineer", CompanyName: "Globex", Description: "short", ApplyOptions: []ApplyOption{{Link: " "}}},
		}, nil
	}}
	svc := NewService(nil, searcher, nil, "", 0)

	req := sampleRequest()
	req.Location = "Berlin"
	res := svc.Search(context.Background(), req)
	require.Len(t, res.Jobs, 2)
	assert.Equal(t, "Berlin", searcher.location)

	byCompany := map[string]Listing{}
	for _, job := range res.Jobs {
		byCompany[job.Company] = job
	}
	acme := byCompany["Acme"]
	assert.Equal(t, 203, utf8.RuneCountInString(acme.Description))
	assert.True(t, strings.HasSuffix(acme.Description, "..."))
	assert.Equal(t, "#", acme.ApplyLink)
	assert.Equal(t, "#", byCompany["Globex"].ApplyLink)
	assert.Equal(t, "short", byCompany["Globex"].Description)
}

func TestCriteriaMergesProfile(t *testing.T) {
	svc := NewService(nil, nil, fakeProfiles{
		"ada@example.com": {ExperienceLevel: "senior", PreferredRoles: []string{"SRE"}, TotalSessions: 3},
	}, "", 0)

	req := sampleRequest()
	req.UserEmail = "ada@example.com"
	c := svc.Criteria(req)
	assert.Equal(t, "senior", c.ExperienceLevel)
	assert.Equal(t, []string{"SRE"}, c.PreferredRoles)
	assert.Equal(t, 3, c.TotalSessions)
	assert.Equal(t, []string{"Golang", "Kubernetes", "Docker"}, c.TechStack)
	assert.InDelta(t, 4.0, c.YearsExperience, 1e-9)
	assert.Equal(t, EducationBachelors, c.EducationLevel)

	req.UserEmail = "unknown@example.com"
	assert.Empty(t, svc.Criteria(req).ExperienceLevel)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...", truncate("abc", 2))
	assert.Equal(t, "", truncate("", 5))
}
