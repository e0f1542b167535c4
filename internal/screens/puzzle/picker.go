package puzzle

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/javalearn/internal/router"
	"github.com/abhisek/javalearn/internal/screen"
	"github.com/abhisek/javalearn/internal/ui/components"
	"github.com/abhisek/javalearn/internal/ui/layout"
	"github.com/abhisek/javalearn/internal/ui/theme"
)

// PickerScreen lists the puzzle levels.
type PickerScreen struct {
	cfg    Config
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// NewPicker lists every level in the library, built-in levels first.
func NewPicker(cfg Config) *PickerScreen {
	p := &PickerScreen{cfg: cfg}
	var items []components.MenuItem
	for _, t := range cfg.Library.Levels {
		items = append(items, components.MenuItem{
			Label:       t.Label,
			Description: fmt.Sprintf("%d questions", len(t.Questions)),
			Action: func() tea.Cmd {
				ps, err := New(cfg, t, SourceOf(cfg.Library, t.Key))
				if err != nil {
					p.errMsg = err.Error()
					return nil
				}
				return func() tea.Msg { return router.PushScreenMsg{Screen: ps} }
			},
		})
	}
	p.menu = components.NewMenu(items)
	return p
}

func (p *PickerScreen) Init() tea.Cmd { return nil }

func (p *PickerScreen) Title() string { return "Puzzles" }

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PickerScreen) View(width, height int) string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Choose a level")
	body := title + "\n\n" + p.menu.View()
	if p.errMsg != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(p.errMsg)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
