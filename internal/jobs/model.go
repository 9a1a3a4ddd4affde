package jobs

import (
	"interview-coach/internal/ats"
	"interview-coach/internal/profiles"
	"interview-coach/internal/resumes"
)

// EducationLevel is the highest degree tier detected in a resume.
type EducationLevel string

const (
	EducationHighSchool EducationLevel = "HighSchool"
	EducationAssociates EducationLevel = "Associates"
	EducationBachelors  EducationLevel = "Bachelors"
	EducationMasters    EducationLevel = "Masters"
	EducationPhD        EducationLevel = "PhD"
)

// Criteria is everything the scorer knows about a candidate. It is rebuilt per search.
type Criteria struct {
	InterviewScore  int                       `json:"interview_score"`
	Skills          []string                  `json:"skills"`
	Experience      []resumes.ExperienceEntry `json:"experience"`
	Education       []resumes.EducationEntry  `json:"education"`
	ATSScore        int                       `json:"ats_score"`
	BestRole        string                    `json:"best_role"`
	SuggestedRoles  []string                  `json:"suggested_roles"`
	Strengths       []string                  `json:"strengths"`
	YearsExperience float64                   `json:"years_experience"`
	EducationLevel  EducationLevel            `json:"education_level"`
	TechStack       []string                  `json:"tech_stack"`

	PreferredRoles  []string `json:"preferred_roles,omitempty"`
	SkillStrengths  []string `json:"skill_strengths,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	TotalSessions   int      `json:"total_sessions,omitempty"`
}

// IsEmpty reports whether the criteria carry no candidate signal at all.
func (c Criteria) IsEmpty() bool {
	return c.InterviewScore == 0 &&
		c.ATSScore == 0 &&
		c.BestRole == "" &&
		len(c.Skills) == 0 &&
		len(c.SuggestedRoles) == 0 &&
		len(c.Strengths) == 0 &&
		len(c.Experience) == 0 &&
		len(c.Education) == 0 &&
		len(c.TechStack) == 0 &&
		len(c.PreferredRoles) == 0 &&
		len(c.SkillStrengths) == 0
}

// WithProfile merges profile-derived fields; they override anything already set.
func (c Criteria) WithProfile(p profiles.PersonalizedCriteria) Criteria {
	c.ExperienceLevel = p.ExperienceLevel
	c.PreferredRoles = append([]string(nil), p.PreferredRoles...)
	c.SkillStrengths = append([]string(nil), p.SkillStrengths...)
	c.TotalSessions = p.TotalSessions
	return c
}

// Listing is a job posting, either from the search provider or synthesized from the catalog.
type Listing struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	ApplyLink    string `json:"apply_link"`
	Source       string `json:"source"`
	Salary       string `json:"salary,omitempty"`
	MatchScore   int    `json:"match_score"`
	Personalized bool   `json:"personalized"`
}

// SearchRequest is the input to Service.Search.
type SearchRequest struct {
	Resume         resumes.ResumeData
	ATS            ats.Analysis
	InterviewScore int
	UserEmail      string
	Location       string
}

// SearchResult is the output of Service.Search.
type SearchResult struct {
	Jobs         []Listing `json:"jobs"`
	Personalized bool      `json:"personalized"`
	Source       string    `json:"source"`
}

const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)
