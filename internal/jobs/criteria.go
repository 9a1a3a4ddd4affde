package jobs

import (
	"regexp"
	"strconv"
	"strings"

	"interview-coach/internal/ats"
	"interview-coach/internal/resumes"
)

const maxTechStack = 5

var (
	yearsPattern  = regexp.MustCompile(`(?i)(\d+)\s*\+?\s*(?:years?|yrs?)\b`)
	monthsPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:months?|mos?)\b`)
)

var educationTiers = []struct {
	level    EducationLevel
	keywords []string
}{
	{EducationPhD, []string{"phd", "ph.d", "doctor"}},
	{EducationMasters, []string{"master", "mba", "m.s", "m.sc", "msc"}},
	{EducationBachelors, []string{"bachelor", "b.s", "b.a", "b.sc", "bsc", "undergraduate"}},
}

// BuildCriteria derives scorer inputs from a resume and its ATS analysis.
func BuildCriteria(resume resumes.ResumeData, analysis ats.Analysis, interviewScore int, techKeywords []string) Criteria {
	return Criteria{
		InterviewScore:  interviewScore,
		Skills:          append([]string(nil), resume.Skills...),
		Experience:      append([]resumes.ExperienceEntry(nil), resume.Experience...),
		Education:       append([]resumes.EducationEntry(nil), resume.Education...),
		ATSScore:        analysis.ATSScore,
		BestRole:        strings.TrimSpace(analysis.BestRole),
		SuggestedRoles:  append([]string(nil), analysis.SuggestedRoles...),
		Strengths:       append([]string(nil), analysis.Strengths...),
		YearsExperience: YearsOfExperience(resume.Experience),
		EducationLevel:  EducationLevelOf(resume.Education),
		TechStack:       TechStack(resume.Skills, techKeywords),
	}
}

// YearsOfExperience sums "N years" tokens per entry, or "N months"/12 when an
// entry has no year token. Each listed role counts for at least one year overall.
func YearsOfExperience(entries []resumes.ExperienceEntry) float64 {
	total := 0.0
	for _, e := range entries {
		text := e.DurationText()
		if years := yearsPattern.FindAllStringSubmatch(text, -1); len(years) > 0 {
			for _, m := range years {
				total += atof(m[1])
			}
			continue
		}
		for _, m := range monthsPattern.FindAllStringSubmatch(text, -1) {
			total += atof(m[1]) / 12
		}
	}
	if n := float64(len(entries)); n > total {
		return n
	}
	return total
}

// EducationLevelOf returns the highest tier named anywhere in the education text.
func EducationLevelOf(entries []resumes.EducationEntry) EducationLevel {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Text())
	}
	text := strings.ToLower(strings.Join(parts, " "))
	for _, tier := range educationTiers {
		if containsAny(text, tier.keywords...) {
			return tier.level
		}
	}
	return EducationAssociates
}

// TechStack keeps skills that mention a recognized technology, in original order, at most five.
func TechStack(skills []string, keywords []string) []string {
	out := make([]string, 0, maxTechStack)
	for _, skill := range skills {
		lower := strings.ToLower(strings.TrimSpace(skill))
		if lower == "" {
			continue
		}
		for _, kw := range keywords {
			if kw != "" && strings.Contains(lower, kw) {
				out = append(out, strings.TrimSpace(skill))
				break
			}
		}
		if len(out) == maxTechStack {
			break
		}
	}
	return out
}

// BuildQuery joins the best role with up to two tech stack terms.
func BuildQuery(c Criteria) string {
	parts := make([]string, 0, 3)
	if c.BestRole != "" {
		parts = append(parts, c.BestRole)
	}
	for i, tech := range c.TechStack {
		if i == 2 {
			break
		}
		parts = append(parts, tech)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func atof(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
