package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/wakey/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Generate produces one validated question/answer pair.
func (g *LLMGenerator) Generate(ctx context.Context) (*Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      userPrompt,
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate question: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse question response: %w", err)
	}

	q := &Question{
		Prompt: strings.TrimSpace(raw.Question),
		Answer: strings.TrimSpace(raw.Answer),
	}
	if err := g.validate(q); err != nil {
		return nil, err
	}
	return q, nil
}

// validate enforces the short-factual-answer contract on generated pairs.
func (g *LLMGenerator) validate(q *Question) error {
	if q.Prompt == "" {
		return fmt.Errorf("generated question has empty prompt")
	}
	if q.Answer == "" {
		return fmt.Errorf("generated question has empty answer")
	}
	if n := len(strings.Fields(q.Answer)); n > g.config.MaxAnswerWords {
		return fmt.Errorf("generated answer has %d words, max %d", n, g.config.MaxAnswerWords)
	}
	// An answer embedded in its own question is solvable without thinking.
	if strings.Contains(strings.ToLower(q.Prompt), strings.ToLower(q.Answer)) {
		return fmt.Errorf("generated answer appears in the question text")
	}
	return nil
}
