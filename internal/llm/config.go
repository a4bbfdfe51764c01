package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the LLM provider.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "mock".
	Provider string

	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI-specific configuration. BaseURL makes the
// provider usable with any OpenAI-compatible API.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "anthropic",
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from WAKEY_* environment variables, falling
// back to standard API key discovery (ANTHROPIC_API_KEY, OPENAI_API_KEY,
// GEMINI_API_KEY) when no explicit provider is selected.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("WAKEY_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	} else if discovered, ok := discoverProvider(); ok {
		cfg.Provider = discovered
	}

	if k := os.Getenv("WAKEY_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	} else if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("WAKEY_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("WAKEY_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	} else if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("WAKEY_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("WAKEY_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("WAKEY_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	} else if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("WAKEY_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	return cfg
}

// discoverProvider probes standard API key env vars and returns the first
// provider whose key is present.
func discoverProvider() (string, bool) {
	switch {
	case os.Getenv("ANTHROPIC_API_KEY") != "" || os.Getenv("WAKEY_ANTHROPIC_API_KEY") != "":
		return "anthropic", true
	case os.Getenv("OPENAI_API_KEY") != "" || os.Getenv("WAKEY_OPENAI_API_KEY") != "":
		return "openai", true
	case os.Getenv("GEMINI_API_KEY") != "" || os.Getenv("WAKEY_GEMINI_API_KEY") != "":
		return "gemini", true
	}
	return "", false
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("an Anthropic API key is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("an OpenAI API key is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("a Gemini API key is required for the gemini provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
