package resumes

import "interview-coach/internal/llm"

var parsedResumeSchema = llm.MustSchema("resume", `{
  "type": "object",
  "properties": {
    "name": {"type": ["string", "null"]},
    "email": {"type": ["string", "null"]},
    "phone": {"type": ["string", "null"]},
    "experience": {"type": ["array", "null"], "items": {"type": ["object", "string"]}},
    "education": {"type": ["array", "null"], "items": {"type": ["object", "string"]}},
    "skills": {"type": ["array", "null"], "items": {"type": "string"}}
  }
}`)
