// Package layout draws the frame around every screen: a header bar, the
// screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/javalearn/internal/ui/theme"
)

// Minimum terminal size the frame renders at.
const (
	MinWidth  = 80
	MinHeight = 24
)

// compactWidth is the width below which screens drop decorations.
const compactWidth = 100

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth reports whether width is too narrow for side decorations.
func IsCompactWidth(width int) bool {
	return width < compactWidth
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Divider renders a horizontal rule at most 60 cells wide.
func Divider(width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Border).
		Render(strings.Repeat("─", max(min(width-8, 60), 0)))
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("Terminal too small: %d x %d\n\nJavaLearn needs at least %d x %d.",
		width, height, MinWidth, MinHeight)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(text))
}

// bar wraps content in the rounded card used by the header and footer.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader shows the app name on the left, the screen title centered
// and an optional status on the right.
func RenderHeader(title, status string, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  JavaLearn")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-4, 0)
	nameW, centerW, rightW := lipgloss.Width(name), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max((inner-centerW)/2-nameW, 1)
	gapR := max(inner-nameW-gapL-centerW-rightW, 1)

	return bar(name+strings.Repeat(" ", gapL)+center+strings.Repeat(" ", gapR)+right, width)
}

// RenderFooter lists key hints left to right.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

// RenderFrame stacks header, body and footer, giving the body whatever
// height the bars leave.
func RenderFrame(header, body, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body = lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(body)
	return header + "\n" + body + "\n" + footer
}
