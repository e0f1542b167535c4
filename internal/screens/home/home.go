package home

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/javalearn/internal/content"
	"github.com/abhisek/javalearn/internal/narration"
	"github.com/abhisek/javalearn/internal/quizgen"
	"github.com/abhisek/javalearn/internal/router"
	"github.com/abhisek/javalearn/internal/screen"
	"github.com/abhisek/javalearn/internal/screens/codewalk"
	"github.com/abhisek/javalearn/internal/screens/course"
	"github.com/abhisek/javalearn/internal/screens/generate"
	"github.com/abhisek/javalearn/internal/screens/help"
	"github.com/abhisek/javalearn/internal/screens/history"
	"github.com/abhisek/javalearn/internal/screens/puzzle"
	"github.com/abhisek/javalearn/internal/selfupdate"
	"github.com/abhisek/javalearn/internal/store"
	"github.com/abhisek/javalearn/internal/ui/components"
	"github.com/abhisek/javalearn/internal/ui/layout"
)

// Deps are the collaborators reachable from the home menu.
type Deps struct {
	Library   *content.Library
	Puzzles   puzzle.Config
	Attempts  store.AttemptRepo   // nil hides history
	Generator quizgen.Generator   // nil disables the Generate item
	Speaker   narration.Speaker   // nil means narration.Nop
	Updates   *selfupdate.Checker // nil skips the update check
	Version   string
	Logger    *slog.Logger
}

const fullModeHeight = 42

type statsLoadedMsg struct {
	stats []store.LevelStats
	err   error
}

type updateAvailableMsg struct {
	version string
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	stats  []store.LevelStats
	update string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps Deps) *HomeScreen {
	if deps.Speaker == nil {
		deps.Speaker = narration.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	h := &HomeScreen{deps: deps}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "COURSE", Action: push(func() screen.Screen {
			return course.New(deps.Library.Course, deps.Speaker, deps.Logger)
		})},
		{Label: "CODE WALK", Action: push(func() screen.Screen {
			return codewalk.New(deps.Library.Programs)
		})},
		{Label: "PUZZLES", Action: push(func() screen.Screen {
			return puzzle.NewPicker(deps.Puzzles)
		})},
		{Label: "GENERATE", Disabled: deps.Generator == nil, Action: push(func() screen.Screen {
			return generate.New(deps.Generator, deps.Puzzles)
		})},
		{Label: "HISTORY", Disabled: deps.Attempts == nil, Action: push(func() screen.Screen {
			return history.New(deps.Attempts)
		})},
		{Label: "HELP", Action: push(func() screen.Screen {
			return help.New(deps.Library.FAQs)
		})},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return tea.Batch(h.loadStats(), h.checkUpdate())
}

// Resume reloads the stats after a level or generation finishes.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.deps.Attempts
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		stats, err := repo.Stats(ctx)
		return statsLoadedMsg{stats: stats, err: err}
	}
}

func (h *HomeScreen) checkUpdate() tea.Cmd {
	checker := h.deps.Updates
	if checker == nil {
		return nil
	}
	version, logger := h.deps.Version, h.deps.Logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			logger.Debug("update check failed", "err", err)
			return nil
		}
		if !res.UpdateAvailable {
			return nil
		}
		return updateAvailableMsg{version: res.LatestVersion}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.err != nil {
			h.deps.Logger.Warn("load stats", "err", msg.err)
			return h, nil
		}
		h.stats = msg.stats
		return h, nil
	case updateAvailableMsg:
		h.update = msg.version
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// Full mode needs room for the banner and seven bordered buttons.
	compact := height < fullModeHeight || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	sections = append(sections, renderStatsBar(summarize(h.stats), cw, compact))
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menu, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu, cw))
	}
	if h.deps.Generator == nil {
		sections = append(sections, renderLLMBanner(cw))
	}
	if h.update != "" {
		sections = append(sections, renderUpdateNote(h.update, cw))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.CabinetFrame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// overview condenses per-level stats for the stats bar.
type overview struct {
	attempts     int
	levels       int
	bestAccuracy float64
}

func summarize(stats []store.LevelStats) overview {
	var o overview
	for _, st := range stats {
		o.attempts += st.Attempts
		o.levels++
		if st.BestTotal > 0 {
			o.bestAccuracy = max(o.bestAccuracy, float64(st.BestScore)/float64(st.BestTotal)*100)
		}
	}
	return o
}
