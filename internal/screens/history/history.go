// Package history lists finished attempts with their answers.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/javalearn/internal/screen"
	"github.com/abhisek/javalearn/internal/store"
	"github.com/abhisek/javalearn/internal/ui/components"
	"github.com/abhisek/javalearn/internal/ui/layout"
	"github.com/abhisek/javalearn/internal/ui/theme"
)

// Limit is how many recent attempts are listed.
const Limit = 50

type attemptsLoadedMsg struct {
	Attempts []store.AttemptRecord
	Stats    []store.LevelStats
	Err      error
}

type detailLoadedMsg struct {
	ID     string
	Detail *store.AttemptRecord
	Err    error
}

// HistoryScreen shows recent attempts newest first. Enter expands an attempt
// to its answers, loaded on first use.
type HistoryScreen struct {
	repo     store.AttemptRepo
	attempts []store.AttemptRecord
	stats    []store.LevelStats
	details  map[string]*store.AttemptRecord

	cursor       int
	expanded     string // attempt ID, empty when collapsed
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.AttemptRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:    repo,
		details: make(map[string]*store.AttemptRecord),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		ctx := context.Background()
		attempts, err := repo.Recent(ctx, store.QueryOpts{Limit: Limit})
		if err != nil {
			return attemptsLoadedMsg{Err: err}
		}
		stats, err := repo.Stats(ctx)
		return attemptsLoadedMsg{Attempts: attempts, Stats: stats, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Answers"},
		{Key: "Esc", Description: "Back"},
	}
}

// Expanded returns the ID of the expanded attempt.
func (s *HistoryScreen) Expanded() string { return s.expanded }

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case detailLoadedMsg:
		switch {
		case msg.Err != nil:
			s.errMsg = msg.Err.Error()
		case msg.Detail != nil:
			s.details[msg.ID] = msg.Detail
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.attempts)-1 {
				s.cursor++
			}
		case "enter", "space":
			return s, s.toggle()
		}
	}
	return s, nil
}

func (s *HistoryScreen) toggle() tea.Cmd {
	if len(s.attempts) == 0 {
		return nil
	}
	id := s.attempts[s.cursor].ID
	if s.expanded == id {
		s.expanded = ""
		return nil
	}
	s.expanded = id
	if _, ok := s.details[id]; ok {
		return nil
	}
	repo := s.repo
	return func() tea.Msg {
		rec, err := repo.Attempt(context.Background(), id)
		return detailLoadedMsg{ID: id, Detail: rec, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  No attempts yet. Finish a puzzle level to see it here.")
	}

	cw := min(max(width-4, 40), 90)
	statsBlock := s.renderStats(cw)

	var rows []string
	cursorRow := 0
	for i, a := range s.attempts {
		if i == s.cursor {
			cursorRow = len(rows)
		}
		rows = append(rows, renderAttempt(a, i == s.cursor, cw))
		if a.ID == s.expanded {
			rows = append(rows, s.renderDetail(a.ID, cw)...)
		}
	}

	visible := max(height-lipgloss.Height(statsBlock)-2, 1)
	s.adjustScroll(cursorRow, visible)
	end := min(s.scrollOffset+visible, len(rows))
	list := strings.Join(rows[s.scrollOffset:end], "\n")

	body := lipgloss.JoinVertical(lipgloss.Left, statsBlock, "", list)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

// adjustScroll keeps the cursor row inside the visible window.
func (s *HistoryScreen) adjustScroll(cursorRow, height int) {
	if cursorRow < s.scrollOffset {
		s.scrollOffset = cursorRow
	}
	if cursorRow >= s.scrollOffset+height {
		s.scrollOffset = cursorRow - height + 1
	}
}

func (s *HistoryScreen) renderStats(cw int) string {
	var parts []string
	for _, st := range s.stats {
		parts = append(parts, fmt.Sprintf("%s  %d played  best %d/%d  avg %.0f%%",
			st.Label, st.Attempts, st.BestScore, st.BestTotal, st.AvgAccuracy*100))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Secondary).
		Render(strings.Join(parts, "\n"))
}

func renderAttempt(a store.AttemptRecord, selected bool, cw int) string {
	marker := "  "
	style := theme.Unselected
	if selected {
		marker = "▸ "
		style = theme.Selected
	}
	line := fmt.Sprintf("%s%-12s  %-20s %2d/%-2d %4.0f%%  %s",
		marker,
		a.CompletedAt.Local().Format("Jan 02 15:04"),
		truncate(a.Label, 20),
		a.Score, a.Total, a.Accuracy()*100,
		a.Source)
	return style.MaxWidth(cw).Render(line)
}

func (s *HistoryScreen) renderDetail(id string, cw int) []string {
	rec, ok := s.details[id]
	if !ok {
		return []string{theme.Hint.Render("    Loading answers...")}
	}
	if len(rec.Answers) == 0 {
		return []string{theme.Hint.Render("    No answers recorded.")}
	}
	var out []string
	for _, ans := range rec.Answers {
		mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		if !ans.Correct {
			mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
		out = append(out, fmt.Sprintf("    %s %d. %s", mark, ans.Position+1, truncate(ans.Prompt, cw-10)))
		detail := "you: " + components.OptionLetter(ans.Selected) + ") " + ans.SelectedText
		if !ans.Correct {
			detail += "   answer: " + components.OptionLetter(ans.CorrectIndex) + ") " + ans.CorrectText
		}
		out = append(out, theme.Hint.Render("        "+truncate(detail, cw-10)))
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
