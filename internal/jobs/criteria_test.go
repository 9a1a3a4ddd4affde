package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"interview-coach/internal/ats"
	"interview-coach/internal/profiles"
	"interview-coach/internal/resumes"
)

func TestYearsOfExperience(t *testing.T) {
	tests := []struct {
		name    string
		entries []resumes.ExperienceEntry
		want    float64
	}{
		{name: "none", want: 0},
		{name: "years plus months", entries: []resumes.ExperienceEntry{{Duration: "3 years"}, {Duration: "6 months"}}, want: 3.5},
		{name: "single year", entries: []resumes.ExperienceEntry{{Duration: "1 year"}}, want: 1},
		{name: "one credit per role", entries: []resumes.ExperienceEntry{{Duration: "6 months"}, {Duration: "Jan 2020 - Mar 2021"}, {}}, want: 3},
		{name: "year token wins over months", entries: []resumes.ExperienceEntry{{Duration: "2 years 6 months"}}, want: 2},
		{name: "plus and abbreviations", entries: []resumes.ExperienceEntry{{Duration: "5+ yrs"}, {Duration: "18 mos"}}, want: 6.5},
		{name: "description used when duration empty", entries: []resumes.ExperienceEntry{{Description: "4 Years as a developer"}}, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, YearsOfExperience(tt.entries), 1e-9)
		})
	}
}

func TestEducationLevelOf(t *testing.T) {
	tests := []struct {
		entries []resumes.EducationEntry
		want    EducationLevel
	}{
		{[]resumes.EducationEntry{{Degree: "PhD in Physics"}}, EducationPhD},
		{[]resumes.EducationEntry{{Degree: "some certificate"}}, EducationAssociates},
		{nil, EducationAssociates},
		{[]resumes.EducationEntry{{Degree: "Bachelor of Science"}, {Degree: "MBA", Institution: "Wharton"}}, EducationMasters},
		{[]resumes.EducationEntry{{Degree: "B.Sc Computer Science"}}, EducationBachelors},
		{[]resumes.EducationEntry{{Degree: "Master of Arts"}, {Degree: "Ph.D. Linguistics"}}, EducationPhD},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EducationLevelOf(tt.entries), "%+v", tt.entries)
	}
}

func TestTechStack(t *testing.T) {
	keywords := DefaultCatalog().TechKeywords

	assert.Equal(t, []string{"Python"}, TechStack([]string{"Python", "Excel"}, keywords))
	assert.Equal(t,
		[]string{"Golang", "Docker", "AWS Lambda", "PostgreSQL", "React Native"},
		TechStack([]string{"Golang", "Leadership", "Docker", "AWS Lambda", "PostgreSQL", "React Native", "Kubernetes"}, keywords),
	)
	assert.Empty(t, TechStack(nil, keywords))
	assert.Empty(t, TechStack([]string{"Communication"}, keywords))
}

func TestBuildQuery(t *testing.T) {
	assert.Equal(t, "Backend Engineer Golang Docker", BuildQuery(Criteria{BestRole: "Backend Engineer", TechStack: []string{"Golang", "Docker", "AWS"}}))
	assert.Equal(t, "Golang", BuildQuery(Criteria{TechStack: []string{"Golang"}}))
	assert.Equal(t, "", BuildQuery(Criteria{}))
}

func TestBuildCriteria(t *testing.T) {
	resume := resumes.ResumeData{
		Name:       "Ada",
		Skills:     []string{"Python", "Excel"},
		Experience: []resumes.ExperienceEntry{{Title: "Analyst", Duration: "3 years"}, {Duration: "6 months"}},
		Education:  []resumes.EducationEntry{{Degree: "Master of Science"}},
	}
	analysis := ats.Analysis{ATSScore: 81, BestRole: " Data Analyst ", SuggestedRoles: []string{"Data Analyst"}, Strengths: []string{"SQL"}}

	c := BuildCriteria(resume, analysis, 72, DefaultCatalog().TechKeywords)
	assert.Equal(t, 72, c.InterviewScore)
	assert.Equal(t, 81, c.ATSScore)
	assert.Equal(t, "Data Analyst", c.BestRole)
	assert.InDelta(t, 3.5, c.YearsExperience, 1e-9)
	assert.Equal(t, EducationMasters, c.EducationLevel)
	assert.Equal(t, []string{"Python"}, c.TechStack)
	assert.False(t, c.IsEmpty())

	resume.Skills[0] = "mutated"
	assert.Equal(t, "Python", c.Skills[0])
}

func TestCriteriaWithProfile(t *testing.T) {
	c := Criteria{InterviewScore: 50}.WithProfile(profiles.PersonalizedCriteria{
		ExperienceLevel: "senior",
		PreferredRoles:  []string{"SRE"},
		SkillStrengths:  []string{"Go"},
		TotalSessions:   4,
	})
	assert.Equal(t, "senior", c.ExperienceLevel)
	assert.Equal(t, []string{"SRE"}, c.PreferredRoles)
	assert.Equal(t, []string{"Go"}, c.SkillStrengths)
	assert.Equal(t, 4, c.TotalSessions)
	assert.Equal(t, 50, c.InterviewScore)
}

func TestCriteriaIsEmpty(t *testing.T) {
	assert.True(t, Criteria{}.IsEmpty())
	assert.True(t, Criteria{EducationLevel: EducationAssociates, YearsExperience: 0}.IsEmpty())
	assert.False(t, Criteria{BestRole: "SRE"}.IsEmpty())
}
