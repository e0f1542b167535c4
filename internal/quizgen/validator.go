package quizgen

import (
	"fmt"

	"github.com/abhisek/javalearn/internal/quiz"
)

// Validator checks a generated batch of questions.
type Validator interface {
	// Name is a short identifier used in errors and prompt feedback.
	Name() string

	// Validate returns nil when every question passes.
	Validate(qs []quiz.Question, req Request) *ValidationError
}

// ValidationError describes why a batch failed validation.
type ValidationError struct {
	Validator string
	Question  int // 1-based; 0 when the failure concerns the whole batch
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	if e.Question > 0 {
		return fmt.Sprintf("validator %q: question %d: %s", e.Validator, e.Question, e.Message)
	}
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
