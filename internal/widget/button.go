// Package widget has the clickable buttons the progress dialog lays out in
// its footer and confirm prompt.
package widget

import "github.com/charmbracelet/lipgloss"

// Button is a single-line clickable label.
type Button struct {
	Label    string
	Accent   string // hex color
	Outline  bool
	Focused  bool
	Disabled bool
}

// Rect is a cell-aligned hit box.
type Rect struct{ X, Y, W, H int }

// Contains reports whether the cell (px, py) lies inside r.
func (r Rect) Contains(px, py int) bool {
	return px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H
}

// Render draws the button.
func (b Button) Render() string {
	style := lipgloss.NewStyle().Padding(0, 2)
	accent := lipgloss.Color(b.Accent)
	switch {
	case b.Disabled:
		style = style.Faint(true).Foreground(lipgloss.Color("#9CA3AF"))
	case b.Focused:
		style = style.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(accent)
	case b.Outline:
		style = style.Foreground(accent)
	default:
		style = style.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#6B7280"))
	}
	return style.Render("[ " + b.Label + " ]")
}

// Row renders buttons left to right separated by a single space and returns
// the hit boxes relative to the row's origin.
func Row(buttons ...Button) (string, []Rect) {
	parts := make([]string, 0, len(buttons)*2)
	rects := make([]Rect, 0, len(buttons))
	x := 0
	for i, b := range buttons {
		if i > 0 {
			parts = append(parts, " ")
			x++
		}
		s := b.Render()
		w := lipgloss.Width(s)
		rects = append(rects, Rect{X: x, Y: 0, W: w, H: 1})
		parts = append(parts, s)
		x += w
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...), rects
}
