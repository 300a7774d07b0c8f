// Package overlay splices rendered blocks on top of each other. Cutting is
// ANSI aware, so styled backgrounds keep their escape sequences intact.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Composite places fg over bg at the given relative position, shifted by the
// offsets. The result never grows past bg.
func Composite(fg, bg string, xPos, yPos Position, xOff, yOff int) string {
	x, y := Offsets(fg, bg, xPos, yPos, xOff, yOff)
	return At(fg, bg, x, y)
}

// At places fg over bg with its top-left cell at (x, y). Parts of fg that fall
// outside bg are clipped.
func At(fg, bg string, x, y int) string {
	if fg == "" {
		return bg
	}
	fgLines := lines(fg)
	bgLines := lines(bg)
	bgWidth := maxWidth(bgLines)
	if x >= bgWidth || y >= len(bgLines) {
		return strings.Join(bgLines, "\n")
	}

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fi := i - y
		if fi < 0 || fi >= len(fgLines) {
			b.WriteString(bgLine)
			continue
		}
		fgLine := fgLines[fi]
		fx := x
		if fx < 0 {
			fgLine = ansi.TruncateLeft(fgLine, -fx, "")
			fx = 0
		}
		fgLine = ansi.Truncate(fgLine, bgWidth-fx, "")
		fgWidth := ansi.StringWidth(fgLine)

		left := ansi.Truncate(bgLine, fx, "")
		if w := ansi.StringWidth(left); w < fx {
			left += strings.Repeat(" ", fx-w)
		}
		b.WriteString(left)
		b.WriteString(fgLine)
		b.WriteString(ansi.TruncateLeft(bgLine, fx+fgWidth, ""))
	}
	return b.String()
}

// Offsets returns the top-left cell Composite draws fg at. A block larger than
// bg keeps its relative position and may start at a negative cell.
func Offsets(fg, bg string, xPos, yPos Position, xOff, yOff int) (int, int) {
	fgLines, bgLines := lines(fg), lines(bg)
	fgWidth, bgWidth := maxWidth(fgLines), maxWidth(bgLines)
	fgHeight, bgHeight := len(fgLines), len(bgLines)

	var x, y int
	switch xPos {
	case Center:
		x = bgWidth/2 - fgWidth/2
	case Right:
		x = bgWidth - fgWidth
	}
	switch yPos {
	case Center:
		y = bgHeight/2 - fgHeight/2
	case Bottom:
		y = bgHeight - fgHeight
	}
	return clamp(x+xOff, 0, bgWidth-fgWidth), clamp(y+yOff, 0, bgHeight-fgHeight)
}

func clamp(v, lower, upper int) int {
	if lower > upper {
		lower, upper = upper, lower
	}
	return min(upper, max(lower, v))
}

func lines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

func maxWidth(ls []string) int {
	w := 0
	for _, l := range ls {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}
