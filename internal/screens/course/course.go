// Package course shows the lessons with optional read-aloud.
package course

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/javalearn/internal/content"
	"github.com/abhisek/javalearn/internal/narration"
	"github.com/abhisek/javalearn/internal/screen"
	"github.com/abhisek/javalearn/internal/ui/layout"
	"github.com/abhisek/javalearn/internal/ui/theme"
)

const listWidth = 30

type narrationDoneMsg struct {
	section int
	err     error
}

// CourseScreen pairs a section list with a scrollable lesson.
type CourseScreen struct {
	sections []content.Section
	speaker  narration.Speaker
	logger   *slog.Logger

	current int
	vp      viewport.Model
	width   int // lesson width the viewport content was rendered at

	speaking bool
	cancel   context.CancelFunc
	notice   string
}

var _ screen.Screen = (*CourseScreen)(nil)
var _ screen.KeyHintProvider = (*CourseScreen)(nil)
var _ screen.Closer = (*CourseScreen)(nil)

// New creates the course screen. A nil speaker disables narration.
func New(sections []content.Section, speaker narration.Speaker, logger *slog.Logger) *CourseScreen {
	if speaker == nil {
		speaker = narration.Nop{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CourseScreen{
		sections: sections,
		speaker:  speaker,
		logger:   logger,
		vp:       viewport.New(),
	}
}

func (s *CourseScreen) Init() tea.Cmd { return nil }

func (s *CourseScreen) Title() string { return "Course" }

func (s *CourseScreen) KeyHints() []layout.KeyHint {
	narrate := "Read aloud"
	if s.speaking {
		narrate = "Stop reading"
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Section"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "n", Description: narrate},
		{Key: "Esc", Description: "Back"},
	}
}

// Current returns the index of the open section.
func (s *CourseScreen) Current() int { return s.current }

func (s *CourseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case narrationDoneMsg:
		if msg.section != s.current {
			return s, nil
		}
		s.speaking = false
		switch {
		case errors.Is(msg.err, narration.ErrUnavailable):
			s.notice = "Narration unavailable: install say, espeak-ng or spd-say"
		case msg.err != nil && !errors.Is(msg.err, context.Canceled):
			s.logger.Warn("narration failed", "section", s.sections[msg.section].Title, "err", msg.err)
			s.notice = "Narration failed"
		}
		return s, nil

	case tea.KeyMsg:
		if len(s.sections) == 0 {
			return s, nil
		}
		switch msg.String() {
		case "right", "l", "tab":
			s.open(s.current + 1)
			return s, nil
		case "left", "h", "shift+tab":
			s.open(s.current - 1)
			return s, nil
		case "n":
			if s.speaking {
				s.stop()
				return s, nil
			}
			return s, s.narrate()
		}
	}

	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

// open switches to section i, clamped, and stops narration.
func (s *CourseScreen) open(i int) {
	i = min(max(i, 0), len(s.sections)-1)
	if i == s.current {
		return
	}
	s.stop()
	s.current = i
	s.notice = ""
	s.width = 0 // force a re-render
}

func (s *CourseScreen) narrate() tea.Cmd {
	if !s.speaker.Available() {
		s.notice = "Narration unavailable: install say, espeak-ng or spd-say"
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.speaking = true
	s.notice = ""

	section, text, speaker := s.current, NarrationText(s.sections[s.current]), s.speaker
	return func() tea.Msg {
		defer cancel()
		return narrationDoneMsg{section: section, err: speaker.Speak(ctx, text)}
	}
}

// Close silences narration when the screen is left.
func (s *CourseScreen) Close() { s.stop() }

func (s *CourseScreen) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.speaking {
		s.speaker.Stop()
	}
	s.speaking = false
}

// NarrationText is what gets read aloud for a section.
func NarrationText(sec content.Section) string {
	parts := []string{sec.Title + "."}
	if sec.Subtitle != "" {
		parts = append(parts, sec.Subtitle+".")
	}
	parts = append(parts, sec.Body)
	if len(sec.KeyPoints) > 0 {
		parts = append(parts, "Key points: "+strings.Join(sec.KeyPoints, ". ")+".")
	}
	for _, ex := range sec.Examples {
		if ex.Explanation != "" {
			parts = append(parts, ex.Title+". "+ex.Explanation)
		}
	}
	return strings.Join(parts, " ")
}

func (s *CourseScreen) View(width, height int) string {
	if len(s.sections) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No lessons available"))
	}

	lessonWidth := max(width-listWidth-4, 20)
	status := s.statusLine()
	vpHeight := max(height-lipgloss.Height(status)-1, 3)
	if s.vp.Height() != vpHeight {
		s.vp.SetHeight(vpHeight)
	}
	if s.width != lessonWidth {
		s.width = lessonWidth
		s.vp.SetWidth(lessonWidth)
		s.vp.SetContent(renderSection(s.sections[s.current], lessonWidth-2))
		s.vp.GotoTop()
	}

	lesson := lipgloss.JoinVertical(lipgloss.Left, s.vp.View(), status)
	return lipgloss.JoinHorizontal(lipgloss.Top, s.renderList(height), " ", lesson)
}

func (s *CourseScreen) statusLine() string {
	switch {
	case s.notice != "":
		return lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice)
	case s.speaking:
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render("♪ Reading aloud... (n to stop)")
	default:
		return theme.Hint.Render(fmt.Sprintf("Lesson %d of %d  ·  %.0f%%", s.current+1, len(s.sections), s.vp.ScrollPercent()*100))
	}
}

func (s *CourseScreen) renderList(height int) string {
	var lines []string
	for i, sec := range s.sections {
		label := fmt.Sprintf("%2d. %s", i+1, sec.Title)
		if i == s.current {
			lines = append(lines, theme.Selected.Render("▸"+label))
		} else {
			lines = append(lines, theme.Unselected.Render(" "+label))
		}
	}
	return lipgloss.NewStyle().
		Width(listWidth).
		Height(max(height-2, 1)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(strings.Join(lines, "\n"))
}

func renderSection(sec content.Section, width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(sec.Title) + "\n")
	if sec.Subtitle != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(sec.Subtitle) + "\n")
	}
	b.WriteString("\n" + wrap.Foreground(theme.Text).Render(sec.Body) + "\n")

	if len(sec.KeyPoints) > 0 {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Key points") + "\n")
		for _, kp := range sec.KeyPoints {
			b.WriteString(wrap.Foreground(theme.Text).Render("  • "+kp) + "\n")
		}
	}

	for _, ex := range sec.Examples {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(ex.Title) + "\n")
		b.WriteString(theme.CodeBlock.Render(theme.Code.Render(ex.Code)) + "\n")
		if ex.Explanation != "" {
			b.WriteString(wrap.Foreground(theme.TextDim).Render(ex.Explanation) + "\n")
		}
	}
	return b.String()
}
