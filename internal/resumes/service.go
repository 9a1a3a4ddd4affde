package resumes

import (
	"context"
	"fmt"
	"strings"

	"interview-coach/internal/extract"
	"interview-coach/internal/llm"
	"interview-coach/internal/shared/telemetry"
)

// Service turns uploaded documents into ResumeData.
type Service struct {
	LLM llm.Client
}

// NewService constructs a Service.
func NewService(client llm.Client) *Service {
	return &Service{LLM: client}
}

// Parse extracts text from a PDF or DOCX upload and structures it.
func (s *Service) Parse(ctx context.Context, fileName string, data []byte) (ResumeData, error) {
	kind, err := extract.KindFromFilename(fileName)
	if err != nil {
		return ResumeData{}, fmt.Errorf("%w: only PDF and DOCX files are supported", ErrInvalidInput)
	}

	text, err := extract.Text(ctx, data, kind)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ResumeData{}, ctxErr
		}
		telemetry.Warn("resumes.extract.failed", map[string]any{
			"kind":  string(kind),
			"bytes": len(data),
			"error": err,
		})
		return ResumeData{}, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	return s.ParseText(ctx, text), nil
}

// ParseText structures raw resume text. Model failures resolve to BasicParse.
func (s *Service) ParseText(ctx context.Context, text string) ResumeData {
	res := llm.Ask(ctx, s.LLM, llm.ParseResumePrompt(text), parsedResumeSchema, BasicParse(text))
	data := normalize(res.Value)
	data.RawText = text
	return data
}

// BasicParse uses the first non-empty line as the name and leaves everything else empty.
func BasicParse(text string) ResumeData {
	name := "Not found"
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			name = trimmed
			break
		}
	}
	return ResumeData{
		Name:       name,
		Experience: []ExperienceEntry{},
		Education:  []EducationEntry{},
		Skills:     []string{},
	}
}

func normalize(d ResumeData) ResumeData {
	if d.Experience == nil {
		d.Experience = []ExperienceEntry{}
	}
	if d.Education == nil {
		d.Education = []EducationEntry{}
	}
	skills := make([]string, 0, len(d.Skills))
	for _, skill := range d.Skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	d.Skills = skills
	return d
}
