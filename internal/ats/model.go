package ats

import "strings"

// Analysis is the ATS compatibility report for a resume.
type Analysis struct {
	ATSScore       int      `json:"ats_score"`
	SuggestedRoles []string `json:"suggested_roles"`
	BestRole       string   `json:"best_role"`
	Strengths      []string `json:"strengths"`
	Improvements   []string `json:"improvements"`
	KeywordDensity int      `json:"keyword_density"`
	FormatScore    int      `json:"format_score"`
}

// Default is the analysis returned when the model cannot produce one.
func Default() Analysis {
	return Analysis{
		ATSScore:       70,
		SuggestedRoles: []string{"General Role"},
		BestRole:       "General Role",
		Strengths:      []string{"Experience listed"},
		Improvements:   []string{"Add more keywords"},
		KeywordDensity: 60,
		FormatScore:    80,
	}
}

// Normalize clamps scores into [0,100] and drops blank list items.
func (a Analysis) Normalize() Analysis {
	a.ATSScore = clamp(a.ATSScore)
	a.KeywordDensity = clamp(a.KeywordDensity)
	a.FormatScore = clamp(a.FormatScore)
	a.BestRole = strings.TrimSpace(a.BestRole)
	a.SuggestedRoles = compact(a.SuggestedRoles)
	a.Strengths = compact(a.Strengths)
	a.Improvements = compact(a.Improvements)
	if a.BestRole == "" && len(a.SuggestedRoles) > 0 {
		a.BestRole = a.SuggestedRoles[0]
	}
	return a
}

// Clone returns a deep copy.
func (a Analysis) Clone() Analysis {
	a.SuggestedRoles = append([]string(nil), a.SuggestedRoles...)
	a.Strengths = append([]string(nil), a.Strengths...)
	a.Improvements = append([]string(nil), a.Improvements...)
	return a
}

func clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
