package quiz

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// Gate is the knowledge gate for one ring session. It holds the current
// question and the solved latch: once a correct answer lands, Solved stays
// true for the life of the session. A wrong answer leaves the latch down;
// the caller shows a transient error and calls Refresh after the configured
// delay to fetch a replacement question. There is no retry limit.
type Gate struct {
	generator Generator

	mu       sync.Mutex
	question Question
	solved   bool
}

// NewGate creates a Gate backed by the given generator.
func NewGate(generator Generator) *Gate {
	return &Gate{generator: generator}
}

// Start fetches the session's first question. Generation failure degrades
// to the fixed fallback pair; the gate is always solvable.
func (g *Gate) Start(ctx context.Context) {
	g.Refresh(ctx)
}

// Refresh replaces the current question with a fresh one, falling back to
// the fixed pair when generation fails. Refreshing a solved gate is a no-op.
func (g *Gate) Refresh(ctx context.Context) {
	g.mu.Lock()
	if g.solved {
		g.mu.Unlock()
		return
	}
	g.mu.Unlock()

	// No generator configured means the fallback pair every time.
	q := &Fallback
	if g.generator != nil {
		var err error
		q, err = g.generator.Generate(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: question generation failed, using fallback: %v\n", err)
			q = &Fallback
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.solved {
		g.question = *q
	}
}

// Submit checks an answer against the current question. A correct answer
// latches the gate solved; submissions after that are idempotently correct.
// On a wrong answer the question stays until the caller Refreshes. While
// the first question is still in flight no answer is correct.
func (g *Gate) Submit(answer string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.solved {
		return true
	}
	if g.question.Prompt == "" {
		return false
	}
	if Check(answer, g.question.Answer) {
		g.solved = true
		return true
	}
	return false
}

// Solved reports whether the gate has been passed this session.
func (g *Gate) Solved() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.solved
}

// Question returns the current question.
func (g *Gate) Question() Question {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.question
}
