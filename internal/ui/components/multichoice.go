package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/javalearn/internal/ui/theme"
)

// optionLetters label options A through F.
const optionLetters = "ABCDEF"

// OptionLetter returns the display letter for option i.
func OptionLetter(i int) string {
	if i >= 0 && i < len(optionLetters) {
		return optionLetters[i : i+1]
	}
	return fmt.Sprint(i + 1)
}

// Choices renders the options of one multiple-choice question. It holds no
// state of its own; callers copy it from the quiz engine before each render.
type Choices struct {
	Options      []string
	Selected     int // -1 when nothing is selected
	Answered     bool
	CorrectIndex int
}

// View renders one option per line. Before submission the selection is
// highlighted; afterwards the correct option is green and a wrong pick red.
func (c Choices) View(width int) string {
	var lines []string
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, OptionLetter(i), opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case c.Answered && i == c.CorrectIndex:
			style = theme.Correct
			line += "  ✓"
		case c.Answered && i == c.Selected:
			style = theme.Incorrect
			line += "  ✗"
		case c.Answered:
			style = theme.Dimmed
		case i == c.Selected:
			style = theme.Selected
		}
		lines = append(lines, style.Width(width).Render(line))
	}
	return strings.Join(lines, "\n")
}
