package profiles

import (
	"encoding/json"

	"interview-coach/internal/ats"
)

// UserProfile is the interview history of one user, keyed by email in the store.
type UserProfile struct {
	Sessions           []SessionRecord    `json:"sessions"`
	ATSHistory         []ats.Analysis     `json:"ats_history"`
	PerformanceMetrics PerformanceMetrics `json:"performance_metrics"`
}

// SessionRecord is one completed interview session. Answers and scores are kept as sent.
type SessionRecord struct {
	Timestamp      string          `json:"timestamp"`
	Answers        json.RawMessage `json:"answers"`
	Scores         json.RawMessage `json:"scores"`
	CompletionRate float64         `json:"completion_rate"`
	AvgScore       float64         `json:"avg_score"`
}

// PerformanceMetrics is derived from sessions and ATS history after every append.
type PerformanceMetrics struct {
	AvgScore       float64  `json:"avg_score"`
	TotalSessions  int      `json:"total_sessions"`
	PreferredRoles []string `json:"preferred_roles"`
	SkillStrengths []string `json:"skill_strengths"`
}

// PersonalizedCriteria is the profile-derived input to job matching.
type PersonalizedCriteria struct {
	ExperienceLevel string   `json:"experience_level"`
	PreferredRoles  []string `json:"preferred_roles"`
	SkillStrengths  []string `json:"skill_strengths"`
	TotalSessions   int      `json:"total_sessions"`
}

// SessionInput is the session_data payload of a record-session request.
type SessionInput struct {
	Timestamp      string          `json:"timestamp"`
	Answers        json.RawMessage `json:"answers"`
	Scores         json.RawMessage `json:"scores"`
	CompletionRate *float64        `json:"completion_rate"`
	AvgScore       *float64        `json:"avg_score"`
	ATSData        *ats.Analysis   `json:"ats_data"`
}

func newProfile() UserProfile {
	return UserProfile{
		Sessions:   []SessionRecord{},
		ATSHistory: []ats.Analysis{},
		PerformanceMetrics: PerformanceMetrics{
			PreferredRoles: []string{},
			SkillStrengths: []string{},
		},
	}
}

// Clone returns a deep copy so callers never share state with the store.
func (p UserProfile) Clone() UserProfile {
	out := UserProfile{
		Sessions:           make([]SessionRecord, len(p.Sessions)),
		ATSHistory:         make([]ats.Analysis, len(p.ATSHistory)),
		PerformanceMetrics: p.PerformanceMetrics,
	}
	for i, s := range p.Sessions {
		s.Answers = cloneRaw(s.Answers)
		s.Scores = cloneRaw(s.Scores)
		out.Sessions[i] = s
	}
	for i, a := range p.ATSHistory {
		out.ATSHistory[i] = a.Clone()
	}
	out.PerformanceMetrics.PreferredRoles = append([]string{}, p.PerformanceMetrics.PreferredRoles...)
	out.PerformanceMetrics.SkillStrengths = append([]string{}, p.PerformanceMetrics.SkillStrengths...)
	return out
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}
