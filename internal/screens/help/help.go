// Package help shows the frequently asked questions as an accordion.
package help

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/javalearn/internal/content"
	"github.com/abhisek/javalearn/internal/screen"
	"github.com/abhisek/javalearn/internal/ui/layout"
	"github.com/abhisek/javalearn/internal/ui/theme"
)

// HelpScreen lists questions; Enter opens the answer under the cursor.
// Several answers may be open at once.
type HelpScreen struct {
	faqs   []content.FAQ
	open   map[int]bool
	cursor int
	offset int
}

var _ screen.Screen = (*HelpScreen)(nil)
var _ screen.KeyHintProvider = (*HelpScreen)(nil)

func New(faqs []content.FAQ) *HelpScreen {
	return &HelpScreen{faqs: faqs, open: make(map[int]bool)}
}

func (s *HelpScreen) Init() tea.Cmd { return nil }

func (s *HelpScreen) Title() string { return "Help" }

func (s *HelpScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Open/close"},
		{Key: "a", Description: "All"},
		{Key: "Esc", Description: "Back"},
	}
}

// IsOpen reports whether the answer to question i is shown.
func (s *HelpScreen) IsOpen(i int) bool { return s.open[i] }

// Cursor returns the index of the highlighted question.
func (s *HelpScreen) Cursor() int { return s.cursor }

func (s *HelpScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(s.faqs) == 0 {
		return s, nil
	}
	switch key.String() {
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, len(s.faqs)-1)
	case "enter", "space":
		s.open[s.cursor] = !s.open[s.cursor]
	case "a":
		// Opens everything, or closes everything once all are open.
		allOpen := true
		for i := range s.faqs {
			if !s.open[i] {
				allOpen = false
				break
			}
		}
		for i := range s.faqs {
			s.open[i] = !allOpen
		}
	}
	return s, nil
}

func (s *HelpScreen) View(width, height int) string {
	if len(s.faqs) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  No help topics available.")
	}

	cw := min(max(width-4, 40), 80)
	answer := lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 4).PaddingLeft(4)

	var lines []string
	cursorLine := 0
	for i, f := range s.faqs {
		arrow, style := "▸", theme.Unselected
		if s.open[i] {
			arrow = "▾"
		}
		if i == s.cursor {
			style = theme.Selected
			cursorLine = len(lines)
		}
		lines = append(lines, style.MaxWidth(cw).Render(arrow+" "+f.Question))
		if s.open[i] {
			lines = append(lines, strings.Split(answer.Render(f.Answer), "\n")...)
			lines = append(lines, "")
		}
	}

	visible := max(height-2, 1)
	if cursorLine < s.offset {
		s.offset = cursorLine
	}
	if cursorLine >= s.offset+visible {
		s.offset = cursorLine - visible + 1
	}
	end := min(s.offset+visible, len(lines))

	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("Frequently asked questions"), "",
		strings.Join(lines[s.offset:end], "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}
