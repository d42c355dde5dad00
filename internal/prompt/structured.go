package prompt

import "github.com/phrazzld/interview-prep-api/internal/domain"

// QuestionSetSchema is the JSON Schema the schema-constrained technique
// asks the model to satisfy, and which the parser's strict stage
// validates decoded responses against.
const QuestionSetSchema = `{
  "type": "object",
  "properties": {
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "properties": {
          "question": {"type": "string", "minLength": 10},
          "difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]},
          "category": {"type": "string"},
          "estimated_time_minutes": {"type": "integer", "minimum": 1},
          "hints": {"type": "array", "items": {"type": "string"}},
          "follow_ups": {"type": "array", "items": {"type": "string"}}
        },
        "required": ["question", "difficulty", "category"]
      }
    },
    "recommendations": {
      "type": "array",
      "items": {"type": "string"}
    }
  },
  "required": ["questions"]
}`

const structuredSystem = `You are an interview question generator that responds only with JSON. Never include prose outside the JSON object.`

const structuredUser = `Generate {{.QuestionCount}} {{.Category}} interview questions for a {{.TierLabel}} candidate applying to this role:

{{.RoleDescription}}

Respond with a single JSON object matching this schema exactly:

{{.Schema}}

Rules:
- "questions" must contain exactly {{.QuestionCount}} items
- Calibrate "difficulty" to the {{.TierLabel}} level
- "estimated_time_minutes" is how long a good answer takes to discuss
- Include 2-4 entries in "recommendations" with preparation advice
- Output raw JSON only: no markdown fences, no commentary`

// registerStructuredOutput installs the schema-constrained templates.
// Every registration carries the output schema so rendering can embed it
// and the parser can validate against it.
func registerStructuredOutput(l *Library) {
	for _, category := range append(domain.Categories(), "") {
		name := "structured_output_generic"
		if category != "" {
			name = "structured_output_" + string(category)
		}
		t := newTemplate(
			name,
			domain.TechniqueStructuredOutput, category, "",
			structuredSystem, structuredUser,
		)
		t.Schema = QuestionSetSchema
		l.register(t)
	}
}
