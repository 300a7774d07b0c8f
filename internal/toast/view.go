package toast

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"

	"volumetric/internal/theme"
)

const closeGlyph = "×"

// View renders the toast at its current opacity. Terminals have no alpha
// channel, so every color is blended toward the backdrop instead.
func (t *Toast) View() string {
	if t.phase == Disposed {
		t.height = 0
		return ""
	}
	backdrop, text, muted := "#FFFFFF", theme.TextPrimary, theme.TextSecondary
	if t.dark {
		backdrop, text, muted = "#000000", "#F9FAFB", "#9CA3AF"
	}
	accent := fade(t.kind.Accent(), backdrop, t.opacity)

	// Thick left border plus one cell of padding on each side.
	inner := max(8, t.width-3)

	head := lipgloss.NewStyle().Foreground(accent).Bold(true).Render(t.kind.Icon()) + " " +
		lipgloss.NewStyle().Foreground(fade(text, backdrop, t.opacity)).Bold(true).Render(t.title)
	closeBtn := lipgloss.NewStyle().Foreground(fade(muted, backdrop, t.opacity)).Render(closeGlyph)
	if w := lipgloss.Width(head); w > inner-2 {
		head = ansi.Truncate(head, inner-2, "…")
	}
	gap := max(1, inner-lipgloss.Width(head)-lipgloss.Width(closeBtn))
	header := head + strings.Repeat(" ", gap) + closeBtn

	body := lipgloss.NewStyle().
		Foreground(fade(muted, backdrop, t.opacity)).
		Width(inner - 2).
		MarginLeft(2).
		Render(t.message)

	out := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(accent).
		Padding(0, 1).
		Width(t.width - 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
	t.height = lipgloss.Height(out)
	return out
}

// fade blends hex toward backdrop; opacity 1 keeps hex, 0 yields backdrop.
func fade(hex, backdrop string, opacity float64) lipgloss.Color {
	fg, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.Color(hex)
	}
	bg, err := colorful.Hex(backdrop)
	if err != nil {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(bg.BlendRgb(fg, opacity).Clamped().Hex())
}
