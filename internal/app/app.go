// Package app hosts the root Bubble Tea model: a screen stack framed by a
// header and a key-hint footer.
package app

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/javalearn/internal/router"
	"github.com/abhisek/javalearn/internal/screen"
	"github.com/abhisek/javalearn/internal/screens/home"
	"github.com/abhisek/javalearn/internal/screens/puzzle"
	"github.com/abhisek/javalearn/internal/screens/welcome"
	"github.com/abhisek/javalearn/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Home home.Deps

	// SkipWelcome starts at the home menu instead of the splash screen.
	SkipWelcome bool

	// StartLevel, when set, opens that puzzle level on top of the home menu.
	StartLevel string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  tea.Cmd
	width  int
	height int
}

// newAppModel builds the initial stack.
func newAppModel(opts Options) (AppModel, error) {
	homeFactory := func() screen.Screen { return home.New(opts.Home) }

	var first screen.Screen
	if opts.SkipWelcome || opts.StartLevel != "" {
		first = homeFactory()
	} else {
		first = welcome.New(homeFactory)
	}
	m := AppModel{router: router.New(first)}

	if opts.StartLevel != "" {
		lib := opts.Home.Library
		if lib == nil {
			return m, fmt.Errorf("no content library to start level %q", opts.StartLevel)
		}
		topic, err := lib.Level(opts.StartLevel)
		if err != nil {
			return m, err
		}
		p, err := puzzle.New(opts.Home.Puzzles, topic, puzzle.SourceOf(lib, topic.Key))
		if err != nil {
			return m, err
		}
		m.start = func() tea.Msg { return router.PushScreenMsg{Screen: p} }
	}
	return m, nil
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.start)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	quit := layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		return append(hp.KeyHints(), quit)
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, quit}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		quit,
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m, err := newAppModel(opts)
	if err != nil {
		return err
	}
	logger := opts.Home.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Info("tui started", "start_level", opts.StartLevel)

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	logger.Info("tui exited")
	return nil
}
