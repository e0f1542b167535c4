package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/javalearn/internal/router"
	"github.com/abhisek/javalearn/internal/screen"
	"github.com/abhisek/javalearn/internal/ui/theme"
)

// Animation timeline. The clock stops at animEnd; ticks keep the steam
// moving after that.
const (
	frame       = 100 * time.Millisecond
	steamStart  = 500 * time.Millisecond
	bannerStart = 1500 * time.Millisecond
	animEnd     = 4500 * time.Millisecond
)

const cupArt = `    (  (
     )  )
  ..........
  |        |]
  |  java  |
  \        /
   '------'`

// steamFrames animate the steam above the cup.
var steamFrames = [][2]string{
	{"    (  (", "     )  )"},
	{"     )  )", "    (  ("},
}

type tickMsg time.Time

// WelcomeScreen shows a short splash animation: a steaming cup, then the
// banner and tagline. Any key moves on to the home screen.
type WelcomeScreen struct {
	next    func() screen.Screen
	elapsed time.Duration
	ticks   int
	done    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. next builds the screen that replaces it and
// is called at most once.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func tick() tea.Cmd {
	return tea.Tick(frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		w.elapsed = min(w.elapsed+frame, animEnd)
		w.ticks++
		return w, tick()
	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

// leave replaces the splash with the next screen. Later keys are ignored.
func (w *WelcomeScreen) leave() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	next := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (w *WelcomeScreen) View(width, height int) string {
	lines := strings.Split(cupArt, "\n")

	if w.elapsed >= steamStart {
		f := steamFrames[w.ticks%len(steamFrames)]
		lines[0], lines[1] = f[0], f[1]
	}
	steam := lipgloss.NewStyle().Foreground(theme.TextDim)
	cup := lipgloss.NewStyle().Foreground(theme.Primary)
	for i := range lines {
		if i < 2 {
			lines[i] = steam.Render(lines[i])
		} else {
			lines[i] = cup.Render(lines[i])
		}
	}
	sections := []string{strings.Join(lines, "\n")}

	if w.elapsed >= bannerStart {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Learn Java, one line at a time.")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, "", RenderBanner(width), "", tagline, "", hint)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
