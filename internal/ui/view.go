package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"volumetric/internal/overlay"
)

func (m Model) View() string {
	bg := m.viewBackground()
	if m.dialog != nil {
		bg = overlay.Composite(m.dialog.View(), bg, overlay.Center, overlay.Center, 0, 0)
	}
	offs := m.toastOffsets()
	for i, t := range m.toasts {
		v := t.View()
		if v == "" {
			continue
		}
		p := t.Position()
		bg = overlay.At(v, bg, p.X, p.Y+offs[i])
	}
	return bg
}

func (m Model) viewHeader() string {
	title := m.title
	if title == "" {
		title = "volumetric"
	}
	h := m.styles.Header.Render(title)
	if m.width > 0 {
		h = m.styles.Header.Width(m.width).Render(title)
	}
	return h
}

func (m Model) viewBackground() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	for _, a := range m.activity {
		b.WriteString(m.styles.Activity.Render(truncate(a, max(10, m.width-4))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help()))
	content := b.String()
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content)
}

func (m Model) help() string {
	parts := []string{"ctrl+c quit"}
	if m.dialog == nil || !m.dialog.Modal() {
		parts = append(parts, "q quit")
	}
	if len(m.toasts) > 0 {
		parts = append(parts, "x dismiss")
	}
	return strings.Join(parts, " • ")
}

// dialogOrigin is where View places the dialog: centered on the window. A
// dialog taller than the window starts above its top row.
func (m Model) dialogOrigin() (int, int) {
	return overlay.Offsets(m.dialog.View(), m.viewBackground(), overlay.Center, overlay.Center, 0, 0)
}

// toastOffsets stacks live toasts below each other, oldest on top.
func (m Model) toastOffsets() []int {
	offs := make([]int, len(m.toasts))
	y := 0
	for i, t := range m.toasts {
		offs[i] = y
		if !t.Disposed() {
			h := t.Height()
			if h == 0 {
				h = lipgloss.Height(t.View())
			}
			y += h
		}
	}
	return offs
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if n <= 0 || len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
