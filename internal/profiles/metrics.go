package profiles

// computeMetrics derives performance metrics from the full session and ATS history.
func computeMetrics(p UserProfile) PerformanceMetrics {
	m := PerformanceMetrics{
		TotalSessions:  len(p.Sessions),
		PreferredRoles: []string{},
		SkillStrengths: []string{},
	}

	var scored, scoredSum, completionSum float64
	for _, s := range p.Sessions {
		if s.AvgScore > 0 {
			scored++
			scoredSum += s.AvgScore
		}
		completionSum += s.CompletionRate
	}
	switch {
	case scored > 0:
		m.AvgScore = scoredSum / scored
	case len(p.Sessions) > 0:
		m.AvgScore = completionSum / float64(len(p.Sessions))
	}

	if n := len(p.ATSHistory); n > 0 {
		latest := p.ATSHistory[n-1]
		m.PreferredRoles = append(m.PreferredRoles, latest.SuggestedRoles...)
		m.SkillStrengths = append(m.SkillStrengths, latest.Strengths...)
	}
	return m
}

// experienceLevel maps an average score to a seniority bracket.
func experienceLevel(avgScore float64) string {
	switch {
	case avgScore > 80:
		return "senior"
	case avgScore > 60:
		return "mid"
	default:
		return "junior"
	}
}
