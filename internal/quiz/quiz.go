// Package quiz implements the knowledge gate: a freshly generated trivia
// question that must be answered correctly before a ringing alarm can be
// dismissed.
package quiz

import "context"

// Question is one generated question/answer pair. Pairs are ephemeral:
// replaced on every fetch and on every wrong-answer retry.
type Question struct {
	// Prompt is the question text shown to the user.
	Prompt string

	// Answer is the expected answer: a single word or short factual
	// phrase. Comparison is case-insensitive and whitespace-trimmed.
	Answer string
}

// Fallback is the fixed question/answer pair substituted whenever
// generation fails. The gate must always remain solvable.
var Fallback = Question{
	Prompt: "What is the capital of France?",
	Answer: "Paris",
}

// Generator produces trivia questions.
type Generator interface {
	// Generate returns one fresh question/answer pair.
	Generate(ctx context.Context) (*Question, error)
}
