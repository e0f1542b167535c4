package quiz

import (
	"errors"
	"fmt"
	"sync"
)

// Precondition violations. All are recoverable; the session is left unchanged.
var (
	ErrNoSelection     = errors.New("no option selected")
	ErrNotAnswered     = errors.New("current question not answered")
	ErrAlreadyAnswered = errors.New("current question already answered")
	ErrEmptyTopic      = errors.New("topic has no questions")
	ErrIndexOutOfRange = errors.New("option index out of range")
	ErrInvalidQuestion = errors.New("invalid question")
)

// Phase is the state of the session at the current position.
type Phase int

const (
	PhaseUnanswered Phase = iota // Waiting for a submission
	PhaseAnswered                // Submitted, waiting for advance
	PhaseComplete                // Last question answered and advanced
)

func (p Phase) String() string {
	switch p {
	case PhaseUnanswered:
		return "unanswered"
	case PhaseAnswered:
		return "answered"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Result is what a submission reports back to the caller.
type Result struct {
	Correct      bool
	Selected     int
	CorrectIndex int
	Explanation  string
	Feedback     string
}

// Answer records one submission for review after the quiz.
type Answer struct {
	Position int
	Selected int
	Correct  bool
}

// State is a read-only copy of the session fields.
type State struct {
	Position     int
	Selected     int
	HasSelection bool
	Answered     bool
	Score        int
	Complete     bool
	Total        int
}

// Engine owns the mutable state of one quiz attempt over one topic.
// All methods are safe to call from multiple goroutines; calls are applied
// one at a time.
type Engine struct {
	mu sync.Mutex

	questions []Question
	position  int
	selected  int // -1 when nothing is selected
	answered  bool
	score     int
	complete  bool
	answers   []Answer

	feedback FeedbackPicker
}

// Option configures an Engine.
type Option func(*Engine)

// WithFeedback sets the picker used for encouragement messages.
func WithFeedback(p FeedbackPicker) Option {
	return func(e *Engine) {
		if p != nil {
			e.feedback = p
		}
	}
}

// New creates an engine positioned at the first question.
func New(questions []Question, opts ...Option) (*Engine, error) {
	if err := checkQuestions(questions); err != nil {
		return nil, err
	}
	e := &Engine{
		questions: questions,
		feedback:  StaticFeedback{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.reset()
	return e, nil
}

// SelectOption marks i as the pending choice. It is ignored once the
// current question has been submitted.
func (e *Engine) SelectOption(i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.answered {
		return nil
	}
	if i < 0 || i >= len(e.questions[e.position].Options) {
		return ErrIndexOutOfRange
	}
	e.selected = i
	return nil
}

// SubmitAnswer locks in the pending choice and scores it.
func (e *Engine) SubmitAnswer() (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.answered {
		return Result{}, ErrAlreadyAnswered
	}
	if e.selected < 0 {
		return Result{}, ErrNoSelection
	}

	q := e.questions[e.position]
	correct := e.selected == q.CorrectIndex
	e.answered = true
	if correct {
		e.score++
	}
	e.answers = append(e.answers, Answer{
		Position: e.position,
		Selected: e.selected,
		Correct:  correct,
	})

	return Result{
		Correct:      correct,
		Selected:     e.selected,
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
		Feedback:     e.feedback.Pick(correct),
	}, nil
}

// Advance moves to the next question, or marks the quiz complete when the
// last question has been answered. Position never moves past the last index.
func (e *Engine) Advance() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.answered {
		return ErrNotAnswered
	}
	if e.complete {
		return nil
	}
	if e.position < len(e.questions)-1 {
		e.position++
		e.selected = -1
		e.answered = false
		return nil
	}
	e.complete = true
	return nil
}

// Restart resets the session over the same questions.
func (e *Engine) Restart() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

// SwitchTopic replaces the question set and resets the session. An empty
// or unplayable set is rejected and the current session is kept.
func (e *Engine) SwitchTopic(questions []Question) error {
	if err := checkQuestions(questions); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.questions = questions
	e.reset()
	return nil
}

// checkQuestions rejects sets the engine could not score.
func checkQuestions(questions []Question) error {
	if len(questions) == 0 {
		return ErrEmptyTopic
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("%w at position %d: %w", ErrInvalidQuestion, i, err)
		}
	}
	return nil
}

func (e *Engine) reset() {
	e.position = 0
	e.selected = -1
	e.answered = false
	e.score = 0
	e.complete = false
	e.answers = nil
}

// State returns a copy of the session fields.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		Position:     e.position,
		Selected:     e.selected,
		HasSelection: e.selected >= 0,
		Answered:     e.answered,
		Score:        e.score,
		Complete:     e.complete,
		Total:        len(e.questions),
	}
}

// Phase reports where the session is in the answer cycle.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case e.complete:
		return PhaseComplete
	case e.answered:
		return PhaseAnswered
	default:
		return PhaseUnanswered
	}
}

// Current returns the question at the current position.
func (e *Engine) Current() Question {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.questions[e.position]
}

// Question returns the question at index i.
func (e *Engine) Question(i int) (Question, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.questions) {
		return Question{}, false
	}
	return e.questions[i], true
}

func (e *Engine) Position() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position
}

// Selected returns the pending choice and whether there is one.
func (e *Engine) Selected() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected, e.selected >= 0
}

func (e *Engine) Answered() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.answered
}

func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

func (e *Engine) Complete() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.complete
}

// Len returns the number of questions in the active topic.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.questions)
}

// Progress returns the 1-based position and the total, for "N of M" display.
func (e *Engine) Progress() (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position + 1, len(e.questions)
}

// Answers returns the submissions made since the last reset.
func (e *Engine) Answers() []Answer {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Answer, len(e.answers))
	copy(out, e.answers)
	return out
}
