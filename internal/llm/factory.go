package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/wakey/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry and
// event-logging middleware.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → timeout → retry → logging → base
	return WithTimeout(WithRetry(WithLogging(base, repo), cfg.Retry), cfg.Timeout), nil
}

// NewProviderFromEnv builds a Provider from environment configuration.
func NewProviderFromEnv(ctx context.Context, repo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, repo)
}
