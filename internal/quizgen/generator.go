// Package quizgen asks an LLM for new multiple-choice Java questions and
// checks them before they reach the quiz engine.
package quizgen

import (
	"context"

	"github.com/abhisek/javalearn/internal/quiz"
)

// Generator produces a playable topic.
type Generator interface {
	// Generate returns a topic whose questions have passed every
	// configured validator.
	Generate(ctx context.Context, req Request) (quiz.Topic, error)
}
