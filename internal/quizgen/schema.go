package quizgen

import "github.com/abhisek/javalearn/internal/llm"

// TopicSchema is the JSON shape requested from the model.
var TopicSchema = &llm.Schema{
	Name:        "java-quiz",
	Description: "A batch of multiple-choice Java questions with explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": MaxCount,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question shown to the learner. Code goes inline in backticks.",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    MinOptions,
							"maxItems":    MaxOptions,
							"description": "Answer choices, exactly one correct",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is right, in one to three sentences",
						},
					},
					"required":             []any{"prompt", "options", "correct_index", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
