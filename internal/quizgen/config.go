package quizgen

import "time"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order; the first failure stops the pipeline.
	Validators []Validator

	// MaxAttempts bounds how many times a batch is requested when
	// validation fails with a retryable error.
	MaxAttempts int

	MaxTokens   int
	Temperature float64

	// MaxAvoid is the number of prior prompts included for deduplication.
	MaxAvoid int

	// Timeout bounds one Generate call across all attempts. Zero means no
	// limit beyond the caller's context.
	Timeout time.Duration
}

// DefaultConfig returns the standard validator chain and limits.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DedupValidator{},
		},
		MaxAttempts: 3,
		MaxTokens:   4096,
		Temperature: 0.7,
		MaxAvoid:    20,
	}
}
