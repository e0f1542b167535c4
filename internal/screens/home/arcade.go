package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/javalearn/internal/screens/welcome"
	"github.com/abhisek/javalearn/internal/ui/components"
	"github.com/abhisek/javalearn/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	art := welcome.BannerArt
	if compact {
		art = welcome.BannerCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders attempts, levels played and best accuracy in a
// double-bordered box.
func renderStatsBar(o overview, cw int, compact bool) string {
	attempts := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	levels := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	best := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			attempts.Render(fmt.Sprintf("▶%d", o.attempts)),
			levels.Render(fmt.Sprintf("☰%d", o.levels)),
			best.Render(fmt.Sprintf("★%.0f%%", o.bestAccuracy)))
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			attempts.Render(fmt.Sprintf("▶ %d PLAYED", o.attempts)),
			levels.Render(fmt.Sprintf("☰ %d LEVELS", o.levels)),
			best.Render(fmt.Sprintf("★ %.0f%% BEST", o.bestAccuracy)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderArcadeMenu renders each menu item as a bordered button.
func renderArcadeMenu(m components.Menu, cw int) string {
	var buttons []string
	for i, item := range m.Items {
		buttons = append(buttons, components.ArcadeButton(item.Label, i == m.Selected, item.Disabled, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as plain lines for small
// terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(m components.Menu, cw int) string {
	var lines []string
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("   "+item.Label))
		case i == m.Selected:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+item.Label+" "))
		default:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+item.Label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderLLMBanner explains why Generate is disabled.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to enable GENERATE")
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latestVersion string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("New version %s available (javalearn update)", latestVersion))
}
