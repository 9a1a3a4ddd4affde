package jobs

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	fallbackSource = "Fallback Catalog"
	maxResults     = 5
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// ErrInvalidCatalog is returned when catalog data fails validation.
var ErrInvalidCatalog = errors.New("invalid job catalog")

// Catalog holds the fallback job tiers and the recognized technology keywords.
type Catalog struct {
	TechKeywords []string `yaml:"tech_keywords"`
	Tiers        []Tier   `yaml:"tiers"`
}

// Tier is a bracket of templates selected by interview score.
type Tier struct {
	Name      string     `yaml:"name"`
	MinScore  int        `yaml:"min_score"`
	Benefits  string     `yaml:"benefits"`
	Templates []Template `yaml:"templates"`
}

// Template is one synthetic employer.
type Template struct {
	Company   string `yaml:"company"`
	Location  string `yaml:"location"`
	Salary    string `yaml:"salary"`
	Seniority string `yaml:"seniority"`
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("jobs: embedded catalog: %v", err))
	}
	return c
}

// LoadCatalog reads a catalog file, or the embedded one when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultCatalog(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	for i, kw := range c.TechKeywords {
		c.TechKeywords[i] = strings.ToLower(strings.TrimSpace(kw))
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(c.Tiers, func(i, j int) bool { return c.Tiers[i].MinScore > c.Tiers[j].MinScore })
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Tiers) == 0 {
		return fmt.Errorf("%w: no tiers", ErrInvalidCatalog)
	}
	hasFloor := false
	for _, tier := range c.Tiers {
		if tier.MinScore <= 0 {
			hasFloor = true
		}
		if len(tier.Templates) == 0 {
			return fmt.Errorf("%w: tier %q has no templates", ErrInvalidCatalog, tier.Name)
		}
		companies := make(map[string]struct{}, len(tier.Templates))
		for _, tpl := range tier.Templates {
			key := strings.ToLower(strings.TrimSpace(tpl.Company))
			if key == "" {
				return fmt.Errorf("%w: tier %q has a template without company", ErrInvalidCatalog, tier.Name)
			}
			if _, dup := companies[key]; dup {
				return fmt.Errorf("%w: tier %q repeats company %q", ErrInvalidCatalog, tier.Name, tpl.Company)
			}
			companies[key] = struct{}{}
		}
	}
	if !hasFloor {
		return fmt.Errorf("%w: no tier accepts a score of 0", ErrInvalidCatalog)
	}
	return nil
}

// TierFor returns the tier that serves the given interview score.
func (c *Catalog) TierFor(interviewScore int) Tier {
	for _, tier := range c.Tiers {
		if interviewScore >= tier.MinScore {
			return tier
		}
	}
	return c.Tiers[len(c.Tiers)-1]
}

// FallbackJobs synthesizes scored listings from the tier matching the interview score.
func (c *Catalog) FallbackJobs(criteria Criteria) []Listing {
	tier := c.TierFor(criteria.InterviewScore)
	personalized := !criteria.IsEmpty()

	out := make([]Listing, 0, len(tier.Templates))
	for _, tpl := range tier.Templates {
		title := strings.TrimSpace(tpl.Seniority + " " + criteria.BestRole)
		listing := Listing{
			Title:        title,
			Company:      tpl.Company,
			Location:     tpl.Location,
			Salary:       tpl.Salary,
			Description:  describe(tpl, tier, title, criteria),
			ApplyLink:    "https://www.google.com/search?q=" + url.QueryEscape(title+" "+tpl.Company+" jobs"),
			Source:       fallbackSource,
			Personalized: personalized,
		}
		listing.MatchScore = Score(listing, criteria)
		out = append(out, listing)
	}

	sortByScore(out)
	if len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}

func describe(tpl Template, tier Tier, title string, c Criteria) string {
	tech := "modern technologies"
	if len(c.TechStack) > 0 {
		tech = strings.Join(firstN(c.TechStack, 3), ", ")
	}
	skills := "relevant skills"
	if len(c.Skills) > 0 {
		skills = strings.Join(firstN(c.Skills, 3), ", ")
	}

	role := title
	if role == "" {
		role = "team member"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Join %s as a %s. Salary: %s. ", tpl.Company, role, tpl.Salary)
	fmt.Fprintf(&b, "Work with %s and apply your experience in %s.", tech, skills)
	if tier.Benefits != "" {
		b.WriteString(" ")
		b.WriteString(tier.Benefits)
	}
	return b.String()
}

func sortByScore(listings []Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].MatchScore > listings[j].MatchScore
	})
}

func firstN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
