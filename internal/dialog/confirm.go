package dialog

import (
	"strings"

	"volumetric/internal/theme"
	"volumetric/internal/widget"
)

type answer int

const (
	unanswered answer = iota
	answerYes
	answerNo
)

// confirm is the yes/no step between asking to cancel and committing it.
// Focus starts on No.
type confirm struct {
	prompt string
	focus  int // 0=yes, 1=no
}

func newConfirm(prompt string) *confirm {
	return &confirm{prompt: prompt, focus: 1}
}

func (c *confirm) handleKey(key string) answer {
	switch strings.ToLower(key) {
	case "y":
		return answerYes
	case "n", "esc", "ctrl+g":
		return answerNo
	case "left", "right", "tab", "shift+tab", "h", "l":
		c.focus = (c.focus + 1) % 2
	case "enter", " ":
		if c.focus == 0 {
			return answerYes
		}
		return answerNo
	}
	return unanswered
}

func (c *confirm) buttons() []widget.Button {
	return []widget.Button{
		{Label: "Yes", Accent: theme.Error, Outline: true, Focused: c.focus == 0},
		{Label: "No", Accent: theme.Primary, Outline: true, Focused: c.focus == 1},
	}
}
