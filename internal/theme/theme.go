// Package theme holds the shared palette for the notification surfaces.
package theme

import "github.com/charmbracelet/lipgloss"

// Accent and neutral colors.
const (
	Primary       = "#4F46E5"
	Success       = "#10B981"
	Warning       = "#F59E0B"
	Error         = "#EF4444"
	Info          = "#3B82F6"
	TextPrimary   = "#1F2937"
	TextSecondary = "#6B7280"
	Border        = "#E5E7EB"
	Background    = "#F9FAFB"
	CardBG        = "#FFFFFF"
)

// Icon glyphs paired with the accents.
const (
	IconSuccess = "✔"
	IconError   = "✖"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
)

// Styles groups the lipgloss styles used by the host and its overlays.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Bold     lipgloss.Style
	Faint    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Spinner  lipgloss.Style
	Frame    lipgloss.Style
	LogBox   lipgloss.Style
}

// Default returns the stock style set. Text colors adapt to light and dark
// terminals.
func Default() Styles {
	base := lipgloss.NewStyle()
	text := lipgloss.AdaptiveColor{Light: TextPrimary, Dark: "#E5E7EB"}
	muted := lipgloss.AdaptiveColor{Light: TextSecondary, Dark: "#9CA3AF"}
	return Styles{
		Title:    base.Bold(true).Foreground(lipgloss.Color(Primary)),
		Subtitle: base.Foreground(muted),
		Body:     base.Foreground(text),
		Bold:     base.Bold(true).Foreground(text),
		Faint:    base.Faint(true),
		Success:  base.Foreground(lipgloss.Color(Success)),
		Error:    base.Foreground(lipgloss.Color(Error)),
		Warning:  base.Foreground(lipgloss.Color(Warning)),
		Info:     base.Foreground(lipgloss.Color(Info)),
		Spinner:  base.Foreground(lipgloss.Color(Info)),
		Frame: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Primary)).
			Padding(1, 2),
		LogBox: base.
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted).
			Padding(0, 1),
	}
}
