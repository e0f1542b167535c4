package quiz

import "fmt"

// Question is a single multiple-choice item. Questions are read-only once
// handed to an Engine.
type Question struct {
	Prompt       string   `yaml:"prompt" json:"prompt" validate:"required"`
	Options      []string `yaml:"options" json:"options" validate:"min=2,dive,required"`
	CorrectIndex int      `yaml:"correct" json:"correct_index" validate:"gte=0"`
	Explanation  string   `yaml:"explanation" json:"explanation"`
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// Validate checks the invariants the engine relies on.
func (q Question) Validate() error {
	if len(q.Options) < 2 {
		return fmt.Errorf("question %q: need at least 2 options, got %d", q.Prompt, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("question %q: correct index %d out of range [0,%d)", q.Prompt, q.CorrectIndex, len(q.Options))
	}
	return nil
}

// Topic is a named, ordered set of questions on one subject area.
type Topic struct {
	Key       string     `yaml:"key" json:"key" validate:"required"`
	Label     string     `yaml:"label" json:"label" validate:"required"`
	Questions []Question `yaml:"questions" json:"questions" validate:"min=1,dive"`
}

// Validate checks that the topic is playable.
func (t Topic) Validate() error {
	if len(t.Questions) == 0 {
		return fmt.Errorf("topic %q: %w", t.Key, ErrEmptyTopic)
	}
	for i, q := range t.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("topic %q question %d: %w", t.Key, i+1, err)
		}
	}
	return nil
}
