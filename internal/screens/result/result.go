// Package result shows the score card at the end of a puzzle level.
package result

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/javalearn/internal/quiz"
	"github.com/abhisek/javalearn/internal/router"
	"github.com/abhisek/javalearn/internal/screen"
	"github.com/abhisek/javalearn/internal/ui/components"
	"github.com/abhisek/javalearn/internal/ui/layout"
	"github.com/abhisek/javalearn/internal/ui/theme"
)

// countInterval is the delay between score count-up frames.
const countInterval = 80 * time.Millisecond

type countMsg struct{}

// Actions builds the screens the result card can move on to.
type Actions struct {
	// Restart replays the same level.
	Restart func() screen.Screen

	// Next switches to the following level; NextLabel names it.
	Next      func() screen.Screen
	NextLabel string
}

// ResultScreen shows the final score, counting up from zero.
type ResultScreen struct {
	summary quiz.Summary
	label   string
	actions Actions
	shown   int
	left    bool
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a result card for a finished level.
func New(label string, summary quiz.Summary, actions Actions) *ResultScreen {
	return &ResultScreen{summary: summary, label: label, actions: actions}
}

func (s *ResultScreen) Init() tea.Cmd {
	return s.tick()
}

func (s *ResultScreen) tick() tea.Cmd {
	if s.shown >= s.summary.Score {
		return nil
	}
	return tea.Tick(countInterval, func(time.Time) tea.Msg { return countMsg{} })
}

func (s *ResultScreen) Title() string {
	return "Results"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "r", Description: "Try again"}}
	if s.actions.Next != nil {
		hints = append(hints, layout.KeyHint{Key: "n", Description: "Next level"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Levels"})
}

// Shown is the score currently displayed by the count-up animation.
func (s *ResultScreen) Shown() int {
	return s.shown
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case countMsg:
		if s.shown < s.summary.Score {
			s.shown++
		}
		return s, s.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return s, s.leave(s.actions.Restart)
		case "n":
			return s, s.leave(s.actions.Next)
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// leave replaces this card with the screen built by fn, once.
func (s *ResultScreen) leave(fn func() screen.Screen) tea.Cmd {
	if fn == nil || s.left {
		return nil
	}
	s.left = true
	next := fn()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *ResultScreen) View(width, height int) string {
	sum := s.summary
	cw := components.ContentWidth(width)
	tierStyle := lipgloss.NewStyle().Foreground(TierColor(sum.Tier)).Bold(true)

	center := func(st lipgloss.Style, text string) string {
		return st.Width(cw).Align(lipgloss.Center).Render(text)
	}

	var sections []string
	sections = append(sections,
		center(tierStyle, sum.Tier.Message()),
		center(lipgloss.NewStyle().Foreground(theme.TextDim), s.label),
		"",
		center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), fmt.Sprintf("%d / %d", s.shown, sum.Total)),
		"",
		components.NewProgressBar("Accuracy", sum.Score, sum.Total, cw).View(),
		"",
		center(lipgloss.NewStyle(), fmt.Sprintf("%s   %s   %s",
			theme.Correct.Render(fmt.Sprintf("✓ %d correct", sum.Score)),
			theme.Incorrect.Render(fmt.Sprintf("✗ %d incorrect", sum.Incorrect)),
			lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(fmt.Sprintf("%.0f%%", sum.Accuracy)),
		)),
		"",
		center(lipgloss.NewStyle().Foreground(theme.Text).Italic(true), sum.Tier.Performance()),
		"",
	)

	buttons := []string{components.ArcadeButton("[R] Try Again", true, false, 20)}
	if s.actions.Next != nil {
		label := "[N] Next Level"
		if s.actions.NextLabel != "" {
			label = "[N] " + s.actions.NextLabel
		}
		buttons = append(buttons, components.ArcadeButton(label, false, false, 20))
	}
	sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, buttons...)))

	card := components.ArcadeCard(strings.Join(sections, "\n"), cw+4)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

// TierColor maps a tier to its medal color.
func TierColor(t quiz.Tier) color.Color {
	switch t {
	case quiz.TierGold:
		return theme.Gold
	case quiz.TierSilver:
		return theme.Silver
	case quiz.TierBronze:
		return theme.Bronze
	default:
		return theme.Slate
	}
}
