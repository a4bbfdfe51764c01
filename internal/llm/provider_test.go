package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`)},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Prompt: "first"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Model != "mock" {
		t.Fatalf("expected model 'mock', got %q", resp1.Model)
	}

	resp2, err := mock.Generate(context.Background(), Request{Prompt: "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
	)

	req := Request{System: "sys", Prompt: "hello"}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].Prompt != "hello" || mock.Calls[0].System != "sys" {
		t.Fatalf("recorded call = %+v", mock.Calls[0])
	}
}

func TestMockProvider_AddResponse(t *testing.T) {
	mock := NewMockProvider()
	mock.AddResponse(MockResponse{Content: json.RawMessage(`{"later":true}`)})

	resp, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"later":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
}

func TestErrorUnwrapping(t *testing.T) {
	inner := errors.New("root cause")

	for _, err := range []error{
		&ErrRateLimit{Err: inner},
		&ErrInvalidResponse{Err: inner},
		&ErrProviderUnavailable{Err: inner},
	} {
		if !errors.Is(err, inner) {
			t.Errorf("%T does not unwrap to the inner error", err)
		}
	}
}
