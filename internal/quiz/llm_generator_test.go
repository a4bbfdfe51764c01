package quiz

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/abhisek/wakey/internal/llm"
)

func canned(question, answer string) llm.MockResponse {
	content, _ := json.Marshal(map[string]string{"question": question, "answer": answer})
	return llm.MockResponse{Content: content}
}

func TestLLMGeneratorGenerate(t *testing.T) {
	mock := llm.NewMockProvider(canned("What is the largest planet?", "Jupiter"))
	gen := New(mock, DefaultConfig())

	q, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if q.Prompt != "What is the largest planet?" || q.Answer != "Jupiter" {
		t.Errorf("question = %+v", q)
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount = %d, want 1", mock.CallCount())
	}
	if mock.Calls[0].Schema != QuestionSchema {
		t.Error("request did not carry the question schema")
	}
}

func TestLLMGeneratorValidation(t *testing.T) {
	tests := []struct {
		name     string
		question string
		answer   string
	}{
		{"empty prompt", "", "Jupiter"},
		{"empty answer", "What is the largest planet?", ""},
		{"answer too long", "Name the first four planets.", "Mercury Venus Earth Mars"},
		{"answer in question", "Is Jupiter the largest planet?", "Jupiter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := New(llm.NewMockProvider(canned(tt.question, tt.answer)), DefaultConfig())
			if _, err := gen.Generate(context.Background()); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLLMGeneratorProviderError(t *testing.T) {
	gen := New(llm.NewMockProvider(), DefaultConfig()) // empty queue errors
	if _, err := gen.Generate(context.Background()); err == nil {
		t.Error("expected provider error to propagate")
	}
}
