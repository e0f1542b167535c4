package quizgen

import (
	"fmt"
	"strings"
)

// Levels accepted by Request.Level.
var Levels = []string{"beginner", "intermediate", "advanced"}

// Count limits.
const (
	DefaultCount = 5
	MaxCount     = 10
)

// Request describes the topic to generate.
type Request struct {
	// Subject is the Java topic, e.g. "generics" or "try-with-resources".
	Subject string

	// Level is one of Levels; empty means beginner.
	Level string

	// Count is the number of questions; 0 means DefaultCount.
	Count int

	// Avoid lists prompts the learner has already seen.
	Avoid []string
}

// Normalize fills defaults and rejects unusable requests.
func (r Request) Normalize() (Request, error) {
	r.Subject = strings.TrimSpace(r.Subject)
	if r.Subject == "" {
		return r, fmt.Errorf("subject is required")
	}
	if len(r.Subject) > 120 {
		return r, fmt.Errorf("subject exceeds 120 characters")
	}
	r.Level = strings.ToLower(strings.TrimSpace(r.Level))
	if r.Level == "" {
		r.Level = Levels[0]
	}
	known := false
	for _, l := range Levels {
		known = known || l == r.Level
	}
	if !known {
		return r, fmt.Errorf("unknown level %q (want one of %s)", r.Level, strings.Join(Levels, ", "))
	}
	if r.Count == 0 {
		r.Count = DefaultCount
	}
	if r.Count < 1 || r.Count > MaxCount {
		return r, fmt.Errorf("count must be between 1 and %d, got %d", MaxCount, r.Count)
	}
	return r, nil
}

// TopicKey is the key a generated topic is registered under.
func (r Request) TopicKey() string {
	return "gen-" + strings.Join(strings.Fields(strings.ToLower(r.Subject)), "-") + "-" + r.Level
}

// TopicLabel is the display name of a generated topic.
func (r Request) TopicLabel() string {
	return fmt.Sprintf("%s (%s)", r.Subject, r.Level)
}
