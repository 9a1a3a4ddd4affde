package interview

// Question is one generated interview question.
type Question struct {
	Type     string `json:"type"`
	Question string `json:"question"`
}

// QuestionSet is the response of question generation.
type QuestionSet struct {
	Questions []Question `json:"questions"`
}

// AnswerAnalysis scores a single interview answer.
type AnswerAnalysis struct {
	Score         int      `json:"score"`
	Feedback      string   `json:"feedback"`
	Strengths     []string `json:"strengths"`
	Improvements  []string `json:"improvements"`
	OverallRating string   `json:"overall_rating"`
}

// DefaultQuestions is returned when question generation fails.
func DefaultQuestions() QuestionSet {
	return QuestionSet{Questions: []Question{{Type: "general", Question: "Tell me about yourself."}}}
}

// DefaultAnswerAnalysis is returned when answer scoring fails.
func DefaultAnswerAnalysis() AnswerAnalysis {
	return AnswerAnalysis{
		Score:         70,
		Feedback:      "Please provide more details in your answer.",
		Strengths:     []string{"Answer provided"},
		Improvements:  []string{"Add specific examples"},
		OverallRating: "Average",
	}
}
