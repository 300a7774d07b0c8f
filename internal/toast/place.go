package toast

import (
	"os"

	"golang.org/x/term"
)

// Layout in terminal cells.
const (
	DefaultWidth = 44
	marginRight  = 2
	// Below the host's header line.
	hostOffsetTop = 2
	// Without a host the toast sits a little lower, clear of the prompt.
	screenOffsetTop = 3
	fallbackColumns = 80
)

// Point is a cell coordinate.
type Point struct{ X, Y int }

// Rect is a cell-aligned area.
type Rect struct{ X, Y, Width, Height int }

// Anchor is the host window a toast attaches to.
type Anchor interface {
	// Visible reports whether the host is on screen and has a known size.
	Visible() bool
	// Bounds is the host's area in screen cells.
	Bounds() Rect
}

func terminalSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// place computes the top-left cell of a toast of the given width.
func place(anchor Anchor, width int, screen func() (int, int, error)) Point {
	if anchor != nil && anchor.Visible() {
		b := anchor.Bounds()
		return Point{
			X: max(b.X, b.X+b.Width-width-marginRight),
			Y: b.Y + hostOffsetTop,
		}
	}
	cols := fallbackColumns
	if screen != nil {
		if w, _, err := screen(); err == nil && w > 0 {
			cols = w
		}
	}
	return Point{X: max(0, cols-width-marginRight), Y: screenOffsetTop}
}

// Contains reports whether the cell (px, py) falls on the rendered toast.
// The height is known once the toast has been rendered.
func (t *Toast) Contains(px, py int) bool {
	if t.phase == Disposed {
		return false
	}
	h := max(t.height, 1)
	return px >= t.pos.X && px < t.pos.X+t.width && py >= t.pos.Y && py < t.pos.Y+h
}

// Height is the rendered height in rows, zero before the first render.
func (t *Toast) Height() int { return t.height }

// Width is the toast width in cells.
func (t *Toast) Width() int { return t.width }
