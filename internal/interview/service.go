package interview

import (
	"context"
	"encoding/json"
	"strings"

	"interview-coach/internal/llm"
	"interview-coach/internal/resumes"
)

// Service generates interview questions and scores answers.
type Service struct {
	LLM llm.Client
}

// NewService constructs a Service.
func NewService(client llm.Client) *Service {
	return &Service{LLM: client}
}

// GenerateQuestions never fails: model errors resolve to DefaultQuestions.
func (s *Service) GenerateQuestions(ctx context.Context, resume resumes.ResumeData) QuestionSet {
	resume.RawText = ""
	payload, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return DefaultQuestions()
	}
	res := llm.Ask(ctx, s.LLM, llm.GenerateQuestionsPrompt(string(payload)), questionSetSchema, DefaultQuestions())
	set := res.Value
	for i := range set.Questions {
		set.Questions[i].Type = strings.ToLower(strings.TrimSpace(set.Questions[i].Type))
		if set.Questions[i].Type == "" {
			set.Questions[i].Type = "general"
		}
	}
	return set
}

// AnalyzeAnswer never fails: model errors resolve to DefaultAnswerAnalysis.
func (s *Service) AnalyzeAnswer(ctx context.Context, question, answer, questionType string) AnswerAnalysis {
	prompt := llm.AnalyzeAnswerPrompt(question, answer, questionType)
	res := llm.Ask(ctx, s.LLM, prompt, answerAnalysisSchema, DefaultAnswerAnalysis())
	out := res.Value
	switch {
	case out.Score < 0:
		out.Score = 0
	case out.Score > 100:
		out.Score = 100
	}
	if out.Strengths == nil {
		out.Strengths = []string{}
	}
	if out.Improvements == nil {
		out.Improvements = []string{}
	}
	return out
}
