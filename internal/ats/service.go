package ats

import (
	"context"
	"encoding/json"

	"interview-coach/internal/llm"
	"interview-coach/internal/resumes"
)

var analysisSchema = llm.MustSchema("ats_analysis", `{
  "type": "object",
  "required": ["ats_score", "suggested_roles", "best_role"],
  "properties": {
    "ats_score": {"type": "integer"},
    "suggested_roles": {"type": "array", "items": {"type": "string"}},
    "best_role": {"type": "string"},
    "strengths": {"type": "array", "items": {"type": "string"}},
    "improvements": {"type": "array", "items": {"type": "string"}},
    "keyword_density": {"type": "integer"},
    "format_score": {"type": "integer"}
  }
}`)

// Service scores resumes for ATS compatibility.
type Service struct {
	LLM llm.Client
}

// NewService constructs a Service.
func NewService(client llm.Client) *Service {
	return &Service{LLM: client}
}

// Analyze never fails: model errors resolve to Default.
func (s *Service) Analyze(ctx context.Context, resume resumes.ResumeData) Analysis {
	resume.RawText = ""
	payload, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return Default()
	}
	res := llm.Ask(ctx, s.LLM, llm.AnalyzeATSPrompt(string(payload)), analysisSchema, Default())
	return res.Value.Normalize()
}
