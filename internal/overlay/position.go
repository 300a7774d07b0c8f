package overlay

// Position is a relative placement of a foreground block inside a background.
type Position int

const (
	Top Position = iota + 1
	Right
	Bottom
	Left
	Center
)
