package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/javalearn/internal/quiz"
)

// DedupValidator rejects batches that repeat a prompt, either within the
// batch or from Request.Avoid.
type DedupValidator struct{}

func (v *DedupValidator) Name() string { return "dedup" }

func (v *DedupValidator) Validate(qs []quiz.Question, req Request) *ValidationError {
	seen := make(map[string]bool, len(qs)+len(req.Avoid))
	for _, p := range req.Avoid {
		seen[normalize(p)] = true
	}
	for n, q := range qs {
		key := normalize(q.Prompt)
		if seen[key] {
			return &ValidationError{
				Validator: v.Name(),
				Question:  n + 1,
				Message:   "prompt repeats an earlier question",
				Retryable: true,
			}
		}
		seen[key] = true
	}
	return nil
}

// buildAvoid formats prior prompts for the prompt, keeping the newest max.
// Returns "None" if there are no prior prompts.
func buildAvoid(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}
	var b strings.Builder
	for i, p := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}
