package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// hangingProvider blocks until its context is done.
type hangingProvider struct{}

func (hangingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (hangingProvider) ModelID() string { return "hang" }

func TestTimeout_BoundsHungCall(t *testing.T) {
	p := WithTimeout(hangingProvider{}, 5*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("deadline not applied")
	}
}

func TestTimeout_BoundsRetryLoop(t *testing.T) {
	// Every attempt rate-limited with a RetryAfter far beyond the deadline:
	// the timeout must cut the backoff sleep short.
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Hour, Err: errors.New("429")}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithTimeout(WithRetry(mock, retryConfig()), 10*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if time.Since(start) > time.Second {
		t.Fatal("retry backoff outlived the deadline")
	}
}

func TestTimeout_PassThrough(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithTimeout(mock, time.Minute)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
}

func TestTimeout_ZeroDisables(t *testing.T) {
	mock := NewMockProvider()
	if p := WithTimeout(mock, 0); p != Provider(mock) {
		t.Fatal("zero timeout should return the provider unwrapped")
	}
}

func TestTimeout_ModelIDDelegates(t *testing.T) {
	p := WithTimeout(hangingProvider{}, time.Minute)
	if p.ModelID() != "hang" {
		t.Fatalf("expected 'hang', got %q", p.ModelID())
	}
}
