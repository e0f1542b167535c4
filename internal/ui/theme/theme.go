package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, built around the coffee orange and ink blue of the Java
// brand.
var (
	Primary   = lipgloss.Color("#F89820") // Java orange
	Secondary = lipgloss.Color("#5382A1") // Duke blue
	Accent    = lipgloss.Color("#E76F00") // Burnt orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep navy
	BgCard    = lipgloss.Color("#1E293B") // Dark slate
	BgCode    = lipgloss.Color("#111827") // Editor background
	Highlight = lipgloss.Color("#334155") // Highlighted code line
	Border    = lipgloss.Color("#334155") // Slate

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Result tier colors.
var (
	Gold   = lipgloss.Color("#FBBF24")
	Silver = lipgloss.Color("#CBD5E1")
	Bronze = lipgloss.Color("#D97706")
	Slate  = lipgloss.Color("#64748B")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Code = lipgloss.NewStyle().
		Foreground(ArcadeCyan).
		Background(BgCode)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	CodeBlock = lipgloss.NewStyle().
			Background(BgCode).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Dimmed = lipgloss.NewStyle().
		Foreground(TextDim)
)
