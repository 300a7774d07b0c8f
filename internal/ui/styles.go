package ui

import (
	"github.com/charmbracelet/lipgloss"

	"volumetric/internal/theme"
)

// Styles are the host window's own styles; overlays bring theirs.
type Styles struct {
	theme.Styles
	Header   lipgloss.Style
	Help     lipgloss.Style
	Activity lipgloss.Style
}

func defaultStyles() Styles {
	base := theme.Default()
	return Styles{
		Styles: base,
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.CardBG)).
			Background(lipgloss.Color(theme.Primary)).
			Padding(0, 1),
		Help:     base.Faint,
		Activity: base.Body.PaddingLeft(2),
	}
}
