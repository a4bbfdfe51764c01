package quiz

import "github.com/abhisek/wakey/internal/llm"

// QuestionSchema defines the JSON schema for generated trivia questions.
var QuestionSchema = &llm.Schema{
	Name:        "trivia-question",
	Description: "A single trivia question with a short factual answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question text. Self-contained, general knowledge, plain ASCII.",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The correct answer: a single word or a short phrase of at most three words.",
			},
		},
		"required":             []any{"question", "answer"},
		"additionalProperties": false,
	},
}
