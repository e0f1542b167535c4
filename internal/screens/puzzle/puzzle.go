// Package puzzle runs a multiple-choice level on top of the quiz engine.
package puzzle

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/javalearn/internal/content"
	"github.com/abhisek/javalearn/internal/quiz"
	"github.com/abhisek/javalearn/internal/router"
	"github.com/abhisek/javalearn/internal/screen"
	"github.com/abhisek/javalearn/internal/screens/result"
	"github.com/abhisek/javalearn/internal/store"
	"github.com/abhisek/javalearn/internal/ui/layout"
)

// Config carries the collaborators shared by every puzzle screen.
type Config struct {
	Library  *content.Library
	Attempts store.AttemptRepo // nil disables history

	// AutoAdvance moves on this long after a submission; zero waits for
	// Enter.
	AutoAdvance time.Duration

	Logger *slog.Logger
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

type autoAdvanceMsg struct{ seq int }

// PuzzleScreen asks the questions of one topic.
type PuzzleScreen struct {
	cfg     Config
	topic   quiz.Topic
	source  string
	engine  *quiz.Engine
	last    *quiz.Result
	notice  string
	started time.Time

	// seq ties an auto-advance tick to the submission that scheduled it.
	seq  int
	done bool
}

var _ screen.Screen = (*PuzzleScreen)(nil)
var _ screen.KeyHintProvider = (*PuzzleScreen)(nil)
var _ screen.StatusProvider = (*PuzzleScreen)(nil)

// New starts a fresh attempt at topic. source is one of the store.Source*
// values and is recorded with the finished attempt.
func New(cfg Config, topic quiz.Topic, source string) (*PuzzleScreen, error) {
	var opts []quiz.Option
	if cfg.Library != nil {
		opts = append(opts, quiz.WithFeedback(cfg.Library.Feedback()))
	}
	engine, err := quiz.New(topic.Questions, opts...)
	if err != nil {
		return nil, fmt.Errorf("start %q: %w", topic.Key, err)
	}
	return resume(cfg, topic, source, engine), nil
}

// resume wraps an engine that was restarted or switched to topic.
func resume(cfg Config, topic quiz.Topic, source string, engine *quiz.Engine) *PuzzleScreen {
	return &PuzzleScreen{
		cfg:     cfg,
		topic:   topic,
		source:  source,
		engine:  engine,
		started: time.Now(),
	}
}

func (s *PuzzleScreen) Init() tea.Cmd {
	return nil
}

func (s *PuzzleScreen) Title() string {
	return s.topic.Label
}

func (s *PuzzleScreen) Status() string {
	st := s.engine.State()
	return fmt.Sprintf("Score %d/%d", st.Score, st.Total)
}

func (s *PuzzleScreen) KeyHints() []layout.KeyHint {
	if s.engine.Answered() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit level"},
		}
	}
	n := min(len(s.engine.Current().Options), 9)
	return []layout.KeyHint{
		{Key: fmt.Sprintf("↑↓/1-%d", n), Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit level"},
	}
}

// Engine exposes the underlying quiz engine.
func (s *PuzzleScreen) Engine() *quiz.Engine {
	return s.engine
}

func (s *PuzzleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case autoAdvanceMsg:
		if msg.seq != s.seq || !s.engine.Answered() {
			return s, nil
		}
		return s, s.advance()

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "up", "k":
			s.move(-1)
		case "down", "j":
			s.move(1)
		case "enter", "space":
			if s.engine.Answered() {
				return s, s.advance()
			}
			return s, s.submit()
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				s.choose(int(key[0] - '1'))
			}
		}
	}
	return s, nil
}

func (s *PuzzleScreen) move(delta int) {
	sel, ok := s.engine.Selected()
	if !ok {
		s.choose(0)
		return
	}
	n := s.engine.Current().Options
	s.choose(min(max(sel+delta, 0), len(n)-1))
}

func (s *PuzzleScreen) choose(i int) {
	if err := s.engine.SelectOption(i); err != nil {
		if errors.Is(err, quiz.ErrIndexOutOfRange) {
			s.notice = fmt.Sprintf("There is no option %d", i+1)
		}
		return
	}
	s.notice = ""
}

func (s *PuzzleScreen) submit() tea.Cmd {
	res, err := s.engine.SubmitAnswer()
	switch {
	case errors.Is(err, quiz.ErrNoSelection):
		s.notice = "Select an option first"
		return nil
	case err != nil:
		return nil
	}
	s.last = &res
	s.notice = ""
	s.seq++

	if s.cfg.AutoAdvance <= 0 {
		return nil
	}
	seq := s.seq
	return tea.Tick(s.cfg.AutoAdvance, func(time.Time) tea.Msg { return autoAdvanceMsg{seq: seq} })
}

func (s *PuzzleScreen) advance() tea.Cmd {
	if err := s.engine.Advance(); err != nil {
		return nil
	}
	s.last = nil
	if !s.engine.Complete() || s.done {
		return nil
	}
	s.done = true

	rec := AttemptRecord(s.topic, s.source, s.engine, time.Since(s.started))
	card := result.New(s.topic.Label, quiz.Summarize(s.engine), s.actions())
	return tea.Batch(
		saveAttempt(s.cfg.Attempts, rec, s.cfg.logger()),
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: card} },
	)
}

// actions wires the result card back to this engine: r restarts the same
// topic, n switches it to the next level.
func (s *PuzzleScreen) actions() result.Actions {
	acts := result.Actions{
		Restart: func() screen.Screen {
			s.engine.Restart()
			return resume(s.cfg, s.topic, s.source, s.engine)
		},
	}
	lib := s.cfg.Library
	if lib == nil || len(lib.Levels) == 0 {
		return acts
	}
	next := lib.NextLevel(s.topic.Key)
	acts.NextLabel = next.Label
	acts.Next = func() screen.Screen {
		if err := s.engine.SwitchTopic(next.Questions); err != nil {
			s.cfg.logger().Warn("switch level", "level", next.Key, "err", err)
			return resume(s.cfg, s.topic, s.source, s.engine)
		}
		return resume(s.cfg, next, SourceOf(lib, next.Key), s.engine)
	}
	return acts
}

// SourceOf records where a library level came from.
func SourceOf(lib *content.Library, key string) string {
	if lib.IsBuiltin(key) {
		return store.SourceBuiltin
	}
	return store.SourceBank
}
