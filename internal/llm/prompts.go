package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/parse_resume.txt
	promptParseResume string
	//go:embed prompts/generate_questions.txt
	promptGenerateQuestions string
	//go:embed prompts/analyze_ats.txt
	promptAnalyzeATS string
	//go:embed prompts/analyze_answer.txt
	promptAnalyzeAnswer string
)

// ParseResumePrompt asks for structured resume fields extracted from raw text.
func ParseResumePrompt(resumeText string) string {
	return strings.NewReplacer("{{RESUME_TEXT}}", resumeText).Replace(promptParseResume)
}

// GenerateQuestionsPrompt asks for interview questions tailored to the resume JSON.
func GenerateQuestionsPrompt(resumeJSON string) string {
	return strings.NewReplacer("{{RESUME_DATA}}", resumeJSON).Replace(promptGenerateQuestions)
}

// AnalyzeATSPrompt asks for an ATS compatibility analysis of the resume JSON.
func AnalyzeATSPrompt(resumeJSON string) string {
	return strings.NewReplacer("{{RESUME_DATA}}", resumeJSON).Replace(promptAnalyzeATS)
}

// AnalyzeAnswerPrompt asks for a scored review of one interview answer.
func AnalyzeAnswerPrompt(question, answer, questionType string) string {
	return strings.NewReplacer(
		"{{QUESTION}}", question,
		"{{QUESTION_TYPE}}", questionType,
		"{{ANSWER}}", answer,
	).Replace(promptAnalyzeAnswer)
}
