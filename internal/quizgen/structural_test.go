package quizgen

import (
	"strings"
	"testing"

	"github.com/abhisek/javalearn/internal/quiz"
)

func validQuestion() quiz.Question {
	return quiz.Question{
		Prompt:       "Which keyword prevents a method from being overridden?",
		Options:      []string{"static", "final", "private", "sealed"},
		CorrectIndex: 1,
		Explanation:  "A final method cannot be overridden by subclasses.",
	}
}

func TestStructural_Valid(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate([]quiz.Question{validQuestion()}, Request{Count: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructural_Failures(t *testing.T) {
	v := &StructuralValidator{}
	tests := []struct {
		name   string
		mutate func(*quiz.Question)
		want   string
	}{
		{"empty prompt", func(q *quiz.Question) { q.Prompt = " " }, "prompt is empty"},
		{"long prompt", func(q *quiz.Question) { q.Prompt = strings.Repeat("x", 601) }, "600"},
		{"one option", func(q *quiz.Question) { q.Options = []string{"a"}; q.CorrectIndex = 0 }, "options"},
		{"seven options", func(q *quiz.Question) { q.Options = []string{"a", "b", "c", "d", "e", "f", "g"} }, "options"},
		{"index high", func(q *quiz.Question) { q.CorrectIndex = 4 }, "out of range"},
		{"index negative", func(q *quiz.Question) { q.CorrectIndex = -1 }, "out of range"},
		{"no explanation", func(q *quiz.Question) { q.Explanation = "" }, "explanation is empty"},
		{"duplicate option", func(q *quiz.Question) { q.Options[2] = "  Final " }, "duplicate option"},
		{"blank option", func(q *quiz.Question) { q.Options[3] = "" }, "option is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(&q)
			err := v.Validate([]quiz.Question{q}, Request{Count: 1})
			if err == nil {
				t.Fatal("expected error")
			}
			if !err.Retryable {
				t.Error("structural failures should be retryable")
			}
			if err.Question != 1 {
				t.Errorf("expected question 1, got %d", err.Question)
			}
			if !strings.Contains(err.Message, tt.want) {
				t.Errorf("message %q does not mention %q", err.Message, tt.want)
			}
		})
	}
}

func TestStructural_WrongCount(t *testing.T) {
	v := &StructuralValidator{}
	err := v.Validate([]quiz.Question{validQuestion()}, Request{Count: 3})
	if err == nil || err.Question != 0 {
		t.Fatalf("expected batch-level error, got %v", err)
	}
}

func TestDedup(t *testing.T) {
	v := &DedupValidator{}
	a, b := validQuestion(), validQuestion()
	b.Prompt = "What does `var` infer?"

	if err := v.Validate([]quiz.Question{a, b}, Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Validate([]quiz.Question{a, b}, Request{Avoid: []string{"what does  `VAR` infer?"}}); err == nil || err.Question != 2 {
		t.Errorf("expected question 2 to clash with avoid list, got %v", err)
	}
	if err := v.Validate([]quiz.Question{a, a}, Request{}); err == nil {
		t.Error("expected in-batch duplicate to fail")
	}
}
