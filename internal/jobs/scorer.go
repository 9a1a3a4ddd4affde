package jobs

import "strings"

const (
	maxSkillPoints        = 25
	pointsPerSkill        = 3
	seniorityMismatchCost = 30
)

// Score rates how well a listing fits the candidate, in [0,100]. It is pure.
func Score(listing Listing, c Criteria) int {
	title := strings.ToLower(listing.Title)
	description := strings.ToLower(listing.Description)

	score := performanceBase(c.InterviewScore)
	score += skillOverlap(title, description, c)
	score += seniorityFit(title, c.YearsExperience)
	score += roleMatch(title, c)
	score += educationMatch(description, c.EducationLevel)

	if c.InterviewScore < 50 && containsAny(title, "senior", "lead") {
		score -= seniorityMismatchCost
	}

	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}

func performanceBase(interviewScore int) int {
	switch {
	case interviewScore >= 80:
		return 40
	case interviewScore >= 60:
		return 30
	case interviewScore >= 40:
		return 20
	default:
		return 10
	}
}

func skillOverlap(title, description string, c Criteria) int {
	seen := make(map[string]struct{}, len(c.Skills)+len(c.TechStack))
	points := 0
	for _, list := range [][]string{c.Skills, c.TechStack} {
		for _, skill := range list {
			key := strings.ToLower(strings.TrimSpace(skill))
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if strings.Contains(title, key) || strings.Contains(description, key) {
				points += pointsPerSkill
			}
		}
	}
	if points > maxSkillPoints {
		return maxSkillPoints
	}
	return points
}

func seniorityFit(title string, years float64) int {
	switch {
	case years >= 5 && containsAny(title, "senior", "lead"):
		return 20
	case years >= 3 && !containsAny(title, "senior", "junior"):
		return 15
	case years < 2 && containsAny(title, "junior", "entry"):
		return 20
	default:
		return 10
	}
}

func roleMatch(title string, c Criteria) int {
	if role := strings.ToLower(strings.TrimSpace(c.BestRole)); role != "" && strings.Contains(title, role) {
		return 10
	}
	for _, r := range c.SuggestedRoles {
		if role := strings.ToLower(strings.TrimSpace(r)); role != "" && strings.Contains(title, role) {
			return 7
		}
	}
	return 0
}

func educationMatch(description string, level EducationLevel) int {
	switch {
	case level == EducationMasters && containsAny(description, "master", "mba"):
		return 5
	case (level == EducationBachelors || level == EducationMasters) && strings.Contains(description, "degree"):
		return 3
	default:
		return 0
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
