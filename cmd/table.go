package cmd

import (
	"fmt"
	"io"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/javalearn/internal/ui/theme"
)

const stampLayout = "2006-01-02 15:04"

// newTable returns a borderless table with a ruled, bold header row.
func newTable(headers ...string) *table.Table {
	cell := lipgloss.NewStyle().PaddingRight(2)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Bold(true)
			}
			return cell
		}).
		Headers(headers...)
}

// printSection writes a titled table, downsampling colors for out.
func printSection(out io.Writer, title string, t *table.Table) {
	lipgloss.Fprintln(out, lipgloss.NewStyle().Bold(true).Render(title))
	lipgloss.Fprintln(out, t.Render())
}

func stamp(t time.Time) string {
	return t.Local().Format(stampLayout)
}

func ratio(a, b int) string {
	return fmt.Sprintf("%d/%d", a, b)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
