package resumes

import (
	"encoding/json"
	"strings"
)

// ResumeData is the structured form of an uploaded resume.
type ResumeData struct {
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Skills     []string          `json:"skills"`
	RawText    string            `json:"raw_text,omitempty"`
}

// ExperienceEntry is one work-history item. Models return these either as
// objects or as bare strings; a bare string lands in Description.
type ExperienceEntry struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is one education item. A bare string lands in Degree.
type EducationEntry struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// DurationText returns the text that describes how long the role lasted.
func (e ExperienceEntry) DurationText() string {
	if d := strings.TrimSpace(e.Duration); d != "" {
		return d
	}
	return strings.TrimSpace(e.Description)
}

// Text joins every populated field.
func (e EducationEntry) Text() string {
	return joinNonEmpty(e.Degree, e.Institution, e.Year)
}

func (e *ExperienceEntry) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*e = ExperienceEntry{Description: s}
		return nil
	}
	var raw struct {
		Title       json.RawMessage `json:"title"`
		Position    json.RawMessage `json:"position"`
		Role        json.RawMessage `json:"role"`
		Company     json.RawMessage `json:"company"`
		Duration    json.RawMessage `json:"duration"`
		Dates       json.RawMessage `json:"dates"`
		Description json.RawMessage `json:"description"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*e = ExperienceEntry{
		Title:       firstString(raw.Title, raw.Position, raw.Role),
		Company:     scalarString(raw.Company),
		Duration:    firstString(raw.Duration, raw.Dates),
		Description: scalarString(raw.Description),
	}
	return nil
}

func (e *EducationEntry) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*e = EducationEntry{Degree: s}
		return nil
	}
	var raw struct {
		Degree      json.RawMessage `json:"degree"`
		Institution json.RawMessage `json:"institution"`
		School      json.RawMessage `json:"school"`
		Year        json.RawMessage `json:"year"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*e = EducationEntry{
		Degree:      scalarString(raw.Degree),
		Institution: firstString(raw.Institution, raw.School),
		Year:        scalarString(raw.Year),
	}
	return nil
}

// scalarString renders a JSON string, number or bool as text. Anything else is empty.
func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return "true"
		}
		return "false"
	}
	return ""
}

func firstString(values ...json.RawMessage) string {
	for _, v := range values {
		if s := scalarString(v); s != "" {
			return s
		}
	}
	return ""
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
