package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/javalearn/internal/quiz"
)

// Option count bounds for generated questions.
const (
	MinOptions = 2
	MaxOptions = 6
)

// StructuralValidator checks counts, lengths, option shape and the correct
// index of every question.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(qs []quiz.Question, req Request) *ValidationError {
	fail := func(i int, format string, args ...any) *ValidationError {
		return &ValidationError{
			Validator: v.Name(),
			Question:  i,
			Message:   fmt.Sprintf(format, args...),
			Retryable: true,
		}
	}

	if len(qs) != req.Count {
		return fail(0, "expected %d questions, got %d", req.Count, len(qs))
	}
	for n, q := range qs {
		i := n + 1
		switch {
		case strings.TrimSpace(q.Prompt) == "":
			return fail(i, "prompt is empty")
		case len(q.Prompt) > 600:
			return fail(i, "prompt exceeds 600 characters")
		case len(q.Options) < MinOptions || len(q.Options) > MaxOptions:
			return fail(i, "must have %d to %d options, got %d", MinOptions, MaxOptions, len(q.Options))
		case q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options):
			return fail(i, "correct_index %d is out of range for %d options", q.CorrectIndex, len(q.Options))
		case strings.TrimSpace(q.Explanation) == "":
			return fail(i, "explanation is empty")
		case len(q.Explanation) > 1000:
			return fail(i, "explanation exceeds 1000 characters")
		}

		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			norm := normalize(o)
			if norm == "" {
				return fail(i, "an option is empty")
			}
			if len(o) > 200 {
				return fail(i, "option exceeds 200 characters")
			}
			if seen[norm] {
				return fail(i, "duplicate option %q", o)
			}
			seen[norm] = true
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
