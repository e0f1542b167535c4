package puzzle

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/javalearn/internal/ui/components"
	"github.com/abhisek/javalearn/internal/ui/layout"
	"github.com/abhisek/javalearn/internal/ui/theme"
)

func (s *PuzzleScreen) View(width, height int) string {
	st := s.engine.State()
	q := s.engine.Current()
	cw := min(width-4, 90)

	var b strings.Builder

	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Question %d of %d", st.Position+1, st.Total))
	b.WriteString(info + "\n")
	b.WriteString(components.NewProgressBar("", st.Position+1, st.Total, cw).View())
	b.WriteString("\n" + layout.Divider(cw+8) + "\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")

	sel := st.Selected
	if !st.HasSelection {
		sel = -1
	}
	b.WriteString(components.Choices{
		Options:      q.Options,
		Selected:     sel,
		Answered:     st.Answered,
		CorrectIndex: q.CorrectIndex,
	}.View(cw))
	b.WriteString("\n\n")

	switch {
	case s.last != nil:
		b.WriteString(s.renderFeedback(cw, st.Position+1 == st.Total))
	case s.notice != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice))
	default:
		b.WriteString(theme.Hint.Render("Pick an answer with ↑↓ or 1-" + fmt.Sprint(len(q.Options)) + ", then press Enter"))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *PuzzleScreen) renderFeedback(cw int, last bool) string {
	res := s.last
	var head string
	if res.Correct {
		head = theme.Correct.Render("✓ Correct!")
	} else {
		q := s.engine.Current()
		head = theme.Incorrect.Render(fmt.Sprintf("✗ Not quite. The answer is %s) %s",
			components.OptionLetter(res.CorrectIndex), q.CorrectOption()))
	}

	lines := []string{head}
	if res.Explanation != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Width(cw).Render(res.Explanation))
	}
	if res.Feedback != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Primary).Italic(true).Render(res.Feedback))
	}

	next := "Press Enter for the next question"
	if last {
		next = "Press Enter to see your results"
	}
	if s.cfg.AutoAdvance > 0 {
		next += fmt.Sprintf(" (moving on in %s)", s.cfg.AutoAdvance)
	}
	lines = append(lines, "", theme.Hint.Render(next))
	return strings.Join(lines, "\n")
}
