package jobs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogShape(t *testing.T) {
	c := DefaultCatalog()
	require.Len(t, c.Tiers, 4)
	for i, tier := range c.Tiers {
		assert.Len(t, tier.Templates, 5, "tier %s", tier.Name)
		if i > 0 {
			assert.Greater(t, c.Tiers[i-1].MinScore, tier.MinScore)
		}
	}
	assert.Contains(t, c.TechKeywords, "python")
	assert.NotContains(t, c.TechKeywords, "go")
}

func TestTierFor(t *testing.T) {
	c := DefaultCatalog()
	cases := map[int]string{100: "premium", 80: "premium", 79: "standard", 60: "standard", 59: "mid", 40: "mid", 39: "entry", 0: "entry", -5: "entry"}
	for score, want := range cases {
		assert.Equal(t, want, c.TierFor(score).Name, "score %d", score)
	}
}

func TestFallbackJobs(t *testing.T) {
	c := DefaultCatalog()
	criteria := Criteria{
		InterviewScore:  85,
		BestRole:        "Backend Engineer",
		Skills:          []string{"Golang", "Docker"},
		TechStack:       []string{"Golang", "Docker"},
		YearsExperience: 6,
		EducationLevel:  EducationMasters,
	}

	jobs := c.FallbackJobs(criteria)
	require.Len(t, jobs, 5)

	companies := map[string]bool{}
	for i, job := range jobs {
		assert.Equal(t, fallbackSource, job.Source)
		assert.True(t, job.Personalized)
		assert.True(t, strings.HasSuffix(job.Title, "Backend Engineer"), job.Title)
		assert.True(t, strings.HasPrefix(job.ApplyLink, "https://www.google.com/search?q="), job.ApplyLink)
		assert.NotContains(t, job.ApplyLink, " ")
		assert.Contains(t, job.Description, "Golang, Docker")
		assert.Equal(t, Score(job, criteria), job.MatchScore)
		assert.GreaterOrEqual(t, job.MatchScore, 0)
		assert.LessOrEqual(t, job.MatchScore, 100)
		if i > 0 {
			assert.GreaterOrEqual(t, jobs[i-1].MatchScore, job.MatchScore)
		}
		key := job.Company + "|" + job.Title
		assert.False(t, companies[key], "duplicate %s", key)
		companies[key] = true
	}
	assert.True(t, companies["Google|Senior Backend Engineer"])
}

func TestFallbackDescriptionsCarryNoEducationBonus(t *testing.T) {
	c := DefaultCatalog()
	for _, score := range []int{0, 45, 65, 90} {
		masters := Criteria{InterviewScore: score, BestRole: "Analyst", EducationLevel: EducationMasters}
		bachelors := masters
		bachelors.EducationLevel = EducationBachelors
		for _, job := range c.FallbackJobs(masters) {
			desc := strings.ToLower(job.Description)
			assert.Zero(t, educationMatch(desc, EducationMasters), "score %d: %s", score, job.Description)
			assert.Zero(t, educationMatch(desc, EducationBachelors), "score %d: %s", score, job.Description)
			assert.Equal(t, Score(job, bachelors), job.MatchScore, "score %d: %s", score, job.Company)
		}
	}
}

func TestFallbackJobsEveryTier(t *testing.T) {
	c := DefaultCatalog()
	for _, score := range []int{0, 45, 65, 90} {
		jobs := c.FallbackJobs(Criteria{InterviewScore: score, BestRole: "Analyst"})
		assert.Len(t, jobs, 5, "score %d", score)
	}
}

func TestFallbackJobsWithoutSignal(t *testing.T) {
	jobs := DefaultCatalog().FallbackJobs(Criteria{})
	require.Len(t, jobs, 5)
	for _, job := range jobs {
		assert.False(t, job.Personalized)
		assert.Contains(t, job.Description, "modern technologies")
		assert.Contains(t, job.Description, "relevant skills")
	}
}

func TestFallbackJobsEmptyTitleDescription(t *testing.T) {
	jobs := DefaultCatalog().FallbackJobs(Criteria{InterviewScore: 65})
	var found bool
	for _, job := range jobs {
		if job.Title == "" {
			found = true
			assert.Contains(t, job.Description, "as a team member")
		}
	}
	assert.True(t, found)
}

func TestParseCatalogInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml": "tiers: [",
		"no tiers": "tech_keywords: [go]",
		"empty tier": `
tiers:
  - name: only
    min_score: 0
    templates: []`,
		"missing company": `
tiers:
  - name: only
    min_score: 0
    templates:
      - {location: Remote}`,
		"duplicate company": `
tiers:
  - name: only
    min_score: 0
    templates:
      - {company: Acme}
      - {company: acme}`,
		"no floor": `
tiers:
  - name: high
    min_score: 50
    templates:
      - {company: Acme}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(raw))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestParseCatalogSortsTiers(t *testing.T) {
	c, err := ParseCatalog([]byte(`
tech_keywords: [" Python ", RUST]
tiers:
  - name: low
    min_score: 0
    templates:
      - {company: Small Co, seniority: Junior}
  - name: high
    min_score: 70
    templates:
      - {company: Big Co, seniority: Senior}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "rust"}, c.TechKeywords)
	assert.Equal(t, "high", c.Tiers[0].Name)
	assert.Equal(t, "low", c.TierFor(10).Name)

	jobs := c.FallbackJobs(Criteria{InterviewScore: 90, BestRole: "Engineer"})
	require.Len(t, jobs, 1)
	assert.Equal(t, "Senior Engineer", jobs[0].Title)
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Len(t, c.Tiers, 4)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tiers:
  - name: any
    min_score: 0
    templates:
      - {company: Acme}
`), 0o644))
	c, err = LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, "any", c.Tiers[0].Name)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
