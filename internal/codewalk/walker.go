// Package codewalk steps through short programs one highlighted line at a
// time, tracking the explanation and the output produced so far.
package codewalk

import (
	"errors"
	"fmt"
)

// NoOutput is shown when a step has produced no output yet.
const NoOutput = "<No Output Yet>"

// ErrNoSteps is returned for a program without steps.
var ErrNoSteps = errors.New("program has no steps")

// Step highlights one line of code.
type Step struct {
	Line        int    `yaml:"line" validate:"gte=0"`
	Explanation string `yaml:"explanation" validate:"required"`
	Output      string `yaml:"output"`
}

// DisplayOutput returns the output or the NoOutput placeholder.
func (s Step) DisplayOutput() string {
	if s.Output == "" {
		return NoOutput
	}
	return s.Output
}

// Program is a titled code listing with its walkthrough.
type Program struct {
	Title string   `yaml:"title" validate:"required"`
	Code  []string `yaml:"code" validate:"min=1"`
	Steps []Step   `yaml:"steps" validate:"min=1,dive"`
}

// Validate checks that every step points at a line of the listing.
func (p Program) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("program %q: %w", p.Title, ErrNoSteps)
	}
	for i, s := range p.Steps {
		if s.Line < 0 || s.Line >= len(p.Code) {
			return fmt.Errorf("program %q step %d: line %d out of range [0,%d)", p.Title, i+1, s.Line, len(p.Code))
		}
	}
	return nil
}

// Walker tracks the current step within a program. Next and Prev clamp at
// the ends instead of failing.
type Walker struct {
	program Program
	index   int
}

// New creates a walker at the first step of p.
func New(p Program) (*Walker, error) {
	if len(p.Steps) == 0 {
		return nil, ErrNoSteps
	}
	return &Walker{program: p}, nil
}

// Next moves forward one step and reports whether it moved.
func (w *Walker) Next() bool {
	if w.index >= len(w.program.Steps)-1 {
		return false
	}
	w.index++
	return true
}

// Prev moves back one step and reports whether it moved.
func (w *Walker) Prev() bool {
	if w.index == 0 {
		return false
	}
	w.index--
	return true
}

// Restart returns to the first step.
func (w *Walker) Restart() {
	w.index = 0
}

// Select switches to another program and starts from its first step.
func (w *Walker) Select(p Program) error {
	if len(p.Steps) == 0 {
		return ErrNoSteps
	}
	w.program = p
	w.index = 0
	return nil
}

func (w *Walker) Program() Program { return w.program }
func (w *Walker) Index() int       { return w.index }
func (w *Walker) Len() int         { return len(w.program.Steps) }
func (w *Walker) Step() Step       { return w.program.Steps[w.index] }
func (w *Walker) AtStart() bool    { return w.index == 0 }
func (w *Walker) AtEnd() bool      { return w.index == len(w.program.Steps)-1 }

// Label renders the position as "Step N of M".
func (w *Walker) Label() string {
	return fmt.Sprintf("Step %d of %d", w.index+1, len(w.program.Steps))
}
