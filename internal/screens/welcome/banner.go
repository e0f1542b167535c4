package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/javalearn/internal/ui/theme"
)

// BannerArt is the block-letter title, shared with the home screen.
const BannerArt = `     ██╗ █████╗ ██╗   ██╗ █████╗
     ██║██╔══██╗██║   ██║██╔══██╗
     ██║███████║██║   ██║███████║
██   ██║██╔══██║╚██╗ ██╔╝██╔══██║
╚█████╔╝██║  ██║ ╚████╔╝ ██║  ██║
 ╚════╝ ╚═╝  ╚═╝  ╚═══╝  ╚═╝  ╚═╝`

// BannerCompact replaces BannerArt on narrow terminals.
const BannerCompact = "J A V A   L E A R N"

// RenderBanner returns the JAVA block letters over a spaced LEARN, falling
// back to a one-line title below 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < 40 {
		return style.Render(BannerCompact)
	}
	learn := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(lipgloss.Width(BannerArt)).
		Align(lipgloss.Center).
		Render("L  E  A  R  N")
	return style.Render(BannerArt) + "\n" + learn
}
