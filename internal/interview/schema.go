package interview

import "interview-coach/internal/llm"

var questionSetSchema = llm.MustSchema("questions", `{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["question"],
        "properties": {
          "type": {"type": "string"},
          "question": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`)

var answerAnalysisSchema = llm.MustSchema("answer_analysis", `{
  "type": "object",
  "required": ["score", "feedback"],
  "properties": {
    "score": {"type": "integer"},
    "feedback": {"type": "string"},
    "strengths": {"type": "array", "items": {"type": "string"}},
    "improvements": {"type": "array", "items": {"type": "string"}},
    "overall_rating": {"type": "string"}
  }
}`)
