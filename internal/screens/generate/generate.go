// Package generate asks an LLM for a fresh quiz on a learner-chosen subject.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/javalearn/internal/llm"
	"github.com/abhisek/javalearn/internal/quiz"
	"github.com/abhisek/javalearn/internal/quizgen"
	"github.com/abhisek/javalearn/internal/router"
	"github.com/abhisek/javalearn/internal/screen"
	"github.com/abhisek/javalearn/internal/screens/puzzle"
	"github.com/abhisek/javalearn/internal/store"
	"github.com/abhisek/javalearn/internal/ui/components"
	"github.com/abhisek/javalearn/internal/ui/layout"
	"github.com/abhisek/javalearn/internal/ui/theme"
)

type generatedMsg struct {
	seq   int
	topic quiz.Topic
	err   error
}

// GenerateScreen collects a subject and level, then plays the generated
// topic.
type GenerateScreen struct {
	gen   quizgen.Generator
	cfg   puzzle.Config
	input components.TextInput
	level int

	spinner spinner.Model
	loading bool
	cancel  context.CancelFunc
	seq     int
	err     error

	// avoid carries prompts from earlier generations so a retry on the same
	// subject asks for new questions.
	avoid []string
}

var _ screen.Screen = (*GenerateScreen)(nil)
var _ screen.Closer = (*GenerateScreen)(nil)

// New creates the generate screen.
func New(gen quizgen.Generator, cfg puzzle.Config) *GenerateScreen {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &GenerateScreen{
		gen:     gen,
		cfg:     cfg,
		input:   components.NewTextInput("Subject", "e.g. generics, streams, records", 120),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *GenerateScreen) Init() tea.Cmd { return s.input.Init() }

func (s *GenerateScreen) Title() string { return "Generate" }

func (s *GenerateScreen) KeyHints() []layout.KeyHint {
	if s.loading {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Level"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

// Level returns the selected difficulty.
func (s *GenerateScreen) Level() string { return quizgen.Levels[s.level] }

// Loading reports whether a generation request is in flight.
func (s *GenerateScreen) Loading() bool { return s.loading }

func (s *GenerateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.loading = false
		s.cancel = nil
		if msg.err != nil {
			s.err = msg.err
			s.cfg.Logger.Warn("quiz generation failed", "subject", s.input.Value(), "err", msg.err)
			return s, nil
		}
		return s, s.play(msg.topic)

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		switch msg.String() {
		case "tab":
			s.level = (s.level + 1) % len(quizgen.Levels)
			return s, nil
		case "shift+tab":
			s.level = (s.level + len(quizgen.Levels) - 1) % len(quizgen.Levels)
			return s, nil
		case "enter":
			return s, s.start()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *GenerateScreen) start() tea.Cmd {
	req, err := quizgen.Request{
		Subject: s.input.Value(),
		Level:   s.Level(),
		Avoid:   s.avoid,
	}.Normalize()
	if err != nil {
		s.err = err
		return nil
	}
	if s.gen == nil {
		s.err = errors.New("no LLM provider configured")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.loading = true
	s.err = nil
	s.seq++

	seq, gen := s.seq, s.gen
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		defer cancel()
		topic, err := gen.Generate(ctx, req)
		return generatedMsg{seq: seq, topic: topic, err: err}
	})
}

func (s *GenerateScreen) play(topic quiz.Topic) tea.Cmd {
	for _, q := range topic.Questions {
		s.avoid = append(s.avoid, q.Prompt)
	}
	p, err := puzzle.New(s.cfg, topic, store.SourceGenerated)
	if err != nil {
		s.err = err
		return nil
	}
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: p} }
}

// Close cancels an in-flight request.
func (s *GenerateScreen) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.loading = false
}

func (s *GenerateScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render("Generate a quiz")
	intro := theme.Hint.Width(cw - 6).
		Render("Pick any Java subject and a level. The questions are written fresh by your configured model.")

	var levels []string
	for i, l := range quizgen.Levels {
		style := theme.Unselected
		if i == s.level {
			style = theme.Selected
		}
		levels = append(levels, style.Render(" "+l+" "))
	}
	levelRow := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Level") + "   " +
		lipgloss.JoinHorizontal(lipgloss.Top, levels...)

	var status string
	switch {
	case s.loading:
		status = s.spinner.View() + " " + lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("Writing %d %s questions on %s...", quizgen.DefaultCount, s.Level(), s.input.Value()))
	case s.err != nil:
		status = lipgloss.NewStyle().Foreground(theme.Error).Width(cw - 6).Render("✗ " + describe(s.err))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		heading, "", intro, "",
		s.input.View(), "",
		levelRow, "",
		status,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.ArcadeCard(body, cw))
}

// describe turns generation errors into a short message for the learner.
func describe(err error) string {
	var rl *llm.ErrRateLimit
	var unavailable *llm.ErrProviderUnavailable
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "The model took too long. Try again."
	case errors.Is(err, llm.ErrCircuitOpen):
		return "The model is failing repeatedly. Wait a minute and try again."
	case errors.As(err, &rl):
		return "Rate limited by the provider. Try again shortly."
	case errors.As(err, &unavailable):
		return "The provider is unavailable right now."
	case quizgen.IsValidationError(err):
		return "The model's questions did not pass checks. Try again or rephrase the subject."
	}
	return err.Error()
}
