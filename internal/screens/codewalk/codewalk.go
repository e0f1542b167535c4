// Package codewalk is the step-by-step program walkthrough screen.
package codewalk

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	walk "github.com/abhisek/javalearn/internal/codewalk"
	"github.com/abhisek/javalearn/internal/screen"
	"github.com/abhisek/javalearn/internal/ui/layout"
	"github.com/abhisek/javalearn/internal/ui/theme"
)

// CodeWalkScreen highlights one line of a program per step.
type CodeWalkScreen struct {
	programs []walk.Program
	current  int
	walker   *walk.Walker // nil when there are no programs
}

var _ screen.Screen = (*CodeWalkScreen)(nil)

// New creates the screen at the first step of the first program. Programs
// without steps are skipped.
func New(programs []walk.Program) *CodeWalkScreen {
	s := &CodeWalkScreen{}
	for _, p := range programs {
		if len(p.Steps) > 0 {
			s.programs = append(s.programs, p)
		}
	}
	if len(s.programs) > 0 {
		s.walker, _ = walk.New(s.programs[0])
	}
	return s
}

func (s *CodeWalkScreen) Init() tea.Cmd { return nil }

func (s *CodeWalkScreen) Title() string { return "Code Walk" }

func (s *CodeWalkScreen) Status() string {
	if s.walker == nil {
		return ""
	}
	return s.walker.Label()
}

func (s *CodeWalkScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Step"},
		{Key: "Tab", Description: "Program"},
		{Key: "r", Description: "Restart"},
		{Key: "Esc", Description: "Back"},
	}
}

// Walker exposes the underlying walker.
func (s *CodeWalkScreen) Walker() *walk.Walker { return s.walker }

func (s *CodeWalkScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || s.walker == nil {
		return s, nil
	}
	switch km.String() {
	case "right", "l", "space", "enter":
		s.walker.Next()
	case "left", "h":
		s.walker.Prev()
	case "r":
		s.walker.Restart()
	case "tab":
		s.selectProgram(s.current + 1)
	case "shift+tab":
		s.selectProgram(s.current - 1)
	}
	return s, nil
}

// selectProgram wraps around the program list.
func (s *CodeWalkScreen) selectProgram(i int) {
	n := len(s.programs)
	i = ((i % n) + n) % n
	if err := s.walker.Select(s.programs[i]); err == nil {
		s.current = i
	}
}

func (s *CodeWalkScreen) View(width, height int) string {
	if s.walker == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No programs available"))
	}

	p := s.walker.Program()
	step := s.walker.Step()
	w := min(width-4, 90)

	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("%s  (%d/%d)", p.Title, s.current+1, len(s.programs)))

	explain := lipgloss.NewStyle().
		Width(w).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(0, 1).
		Foreground(theme.Text).
		Render(step.Explanation)

	outLabel := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Output")
	outStyle := theme.CodeBlock.Width(w)
	if step.Output == "" {
		outStyle = outStyle.Foreground(theme.TextDim).Italic(true)
	}
	output := outStyle.Render(step.DisplayOutput())

	label := theme.Hint.Render(s.walker.Label())

	body := lipgloss.JoinVertical(lipgloss.Left,
		title, "",
		renderCode(p.Code, step.Line, w), "",
		explain, "",
		outLabel, output, "",
		label,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, body)
}

// renderCode numbers the listing and highlights line hl.
func renderCode(code []string, hl, width int) string {
	lines := make([]string, len(code))
	for i, line := range code {
		text := fmt.Sprintf("%3d  %s", i+1, line)
		if i == hl {
			lines[i] = lipgloss.NewStyle().
				Width(width - 2).
				Background(theme.Highlight).
				Foreground(theme.Text).
				Bold(true).
				Render("▸" + text)
			continue
		}
		lines[i] = theme.Code.Render(" " + text)
	}
	return theme.CodeBlock.Width(width).Render(strings.Join(lines, "\n"))
}
