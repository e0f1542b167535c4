package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write multiple-choice quiz questions for people learning Java.

Rules:
- Every question tests one concept from the requested subject at the requested level.
- Beginner questions cover syntax and core concepts. Intermediate questions cover the standard library and object-oriented design. Advanced questions cover concurrency, the JVM, generics edge cases and performance.
- Give 4 options unless the question is naturally true/false. Exactly one option is correct.
- Distractors are plausible mistakes a learner would make, never jokes.
- Options within a question must all be different.
- Keep code short and inline, wrapped in backticks. Target Java 17.
- The explanation says why the correct option is right in one to three sentences.
- Do not repeat any question from the "already asked" list.`

// buildUserMessage renders the request and any feedback from rejected
// earlier attempts.
func buildUserMessage(req Request, cfg Config, feedback []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", req.Subject)
	fmt.Fprintf(&b, "Level: %s\n", req.Level)
	fmt.Fprintf(&b, "Number of questions: %d\n", req.Count)

	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildAvoid(req.Avoid, cfg.MaxAvoid))

	if len(feedback) > 0 {
		b.WriteString("\n\nYour previous answer was rejected. Fix these problems:\n")
		for _, f := range feedback {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
