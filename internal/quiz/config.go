package quiz

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the response.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0). Question variety
	// matters here: the same half-asleep user sees a new question every
	// wrong answer.
	Temperature float64

	// MaxAnswerWords rejects generated answers longer than this many
	// words; long answers are hopeless to type at 7am.
	MaxAnswerWords int
}

// DefaultConfig returns the recommended generator configuration.
func DefaultConfig() Config {
	return Config{
		MaxTokens:      256,
		Temperature:    0.9,
		MaxAnswerWords: 3,
	}
}
