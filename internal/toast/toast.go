// Package toast implements a transient, self-dismissing notification overlay.
//
// A Toast is a small state machine (FadingIn, Visible, FadingOut, Disposed)
// advanced by tick messages delivered on the Bubble Tea loop. Nothing outside
// that loop touches a toast, so no locking is needed.
package toast

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"volumetric/internal/debug"
	"volumetric/internal/theme"
)

// Animation timing.
const (
	AnimationSteps  = 20
	AnimationDelay  = 15 * time.Millisecond
	DisplayDuration = 3 * time.Second

	// Fade-in stops short of fully opaque.
	opacityCeiling = 0.98
	opacityStep    = 1.0 / AnimationSteps
)

// Kind selects the accent color and icon.
type Kind int

const (
	Success Kind = iota
	Error
	Warning
	Info
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Accent returns the kind's hex color.
func (k Kind) Accent() string {
	switch k {
	case Success:
		return theme.Success
	case Error:
		return theme.Error
	case Warning:
		return theme.Warning
	default:
		return theme.Info
	}
}

// Icon returns the kind's glyph.
func (k Kind) Icon() string {
	switch k {
	case Success:
		return theme.IconSuccess
	case Error:
		return theme.IconError
	case Warning:
		return theme.IconWarning
	default:
		return theme.IconInfo
	}
}

// ParseKind maps "success", "error", "warning"/"warn" and "info" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success", "ok":
		return Success, nil
	case "error", "err":
		return Error, nil
	case "warning", "warn":
		return Warning, nil
	case "info", "":
		return Info, nil
	}
	return Info, fmt.Errorf("invalid toast kind: %q (valid: success|error|warning|info)", s)
}

// Phase is the animation state.
type Phase int

const (
	FadingIn Phase = iota
	Visible
	FadingOut
	Disposed
)

func (p Phase) String() string {
	switch p {
	case FadingIn:
		return "fading-in"
	case Visible:
		return "visible"
	case FadingOut:
		return "fading-out"
	case Disposed:
		return "disposed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// TickMsg advances the fade animation of the toast with the given ID.
type TickMsg struct{ ID uint64 }

// ExpireMsg ends the display period of the toast with the given ID.
type ExpireMsg struct{ ID uint64 }

var lastID atomic.Uint64

// Toast is a single notification. Obtain one with Show.
type Toast struct {
	id      uint64
	kind    Kind
	title   string
	message string

	opacity float64
	phase   Phase
	// fadingOut latches on the first dismissal so later requests are ignored.
	fadingOut bool

	displayFor time.Duration
	pos        Point
	width      int
	height     int
	dark       bool
}

// Option configures a Toast.
type Option func(*config)

type config struct {
	displayFor time.Duration
	screenSize func() (int, int, error)
	width      int
	dark       *bool
}

// WithDisplayDuration overrides how long the toast stays fully visible.
func WithDisplayDuration(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.displayFor = d
		}
	}
}

// WithScreenSize replaces the terminal size probe used when no host anchor
// is available.
func WithScreenSize(f func() (int, int, error)) Option {
	return func(c *config) {
		c.screenSize = f
	}
}

// WithWidth sets the toast width in cells.
func WithWidth(w int) Option {
	return func(c *config) {
		if w > 0 {
			c.width = w
		}
	}
}

// WithDarkBackground fixes the backdrop the fade blends toward. Hosts that own
// the terminal resolve it before their input loop starts; otherwise Show
// queries the terminal.
func WithDarkBackground(dark bool) Option {
	return func(c *config) {
		c.dark = &dark
	}
}

// Show creates a toast positioned at the anchor's top-right corner, or the
// screen's when the anchor is nil or hidden. The caller must run the command
// returned by Init to start the fade-in.
func Show(kind Kind, title, message string, anchor Anchor, opts ...Option) *Toast {
	cfg := config{
		displayFor: DisplayDuration,
		screenSize: terminalSize,
		width:      DefaultWidth,
	}
	for _, o := range opts {
		o(&cfg)
	}
	t := &Toast{
		id:         lastID.Add(1),
		kind:       kind,
		title:      title,
		message:    message,
		phase:      FadingIn,
		displayFor: cfg.displayFor,
		width:      cfg.width,
	}
	if cfg.dark != nil {
		t.dark = *cfg.dark
	} else {
		t.dark = lipgloss.HasDarkBackground()
	}
	t.pos = place(anchor, cfg.width, cfg.screenSize)
	return t
}

// ShowSuccess shows a success toast.
func ShowSuccess(title, message string, anchor Anchor, opts ...Option) *Toast {
	return Show(Success, title, message, anchor, opts...)
}

// ShowError shows an error toast.
func ShowError(title, message string, anchor Anchor, opts ...Option) *Toast {
	return Show(Error, title, message, anchor, opts...)
}

// ShowWarning shows a warning toast.
func ShowWarning(title, message string, anchor Anchor, opts ...Option) *Toast {
	return Show(Warning, title, message, anchor, opts...)
}

// ShowInfo shows an informational toast.
func ShowInfo(title, message string, anchor Anchor, opts ...Option) *Toast {
	return Show(Info, title, message, anchor, opts...)
}

func (t *Toast) ID() uint64                { return t.id }
func (t *Toast) Kind() Kind                { return t.kind }
func (t *Toast) Title() string             { return t.title }
func (t *Toast) Message() string           { return t.message }
func (t *Toast) Opacity() float64          { return t.opacity }
func (t *Toast) Phase() Phase              { return t.phase }
func (t *Toast) Position() Point           { return t.pos }
func (t *Toast) Disposed() bool            { return t.phase == Disposed }
func (t *Toast) DisplayFor() time.Duration { return t.displayFor }

// Init starts the fade-in animation.
func (t *Toast) Init() tea.Cmd {
	if t.phase != FadingIn {
		return nil
	}
	return t.nextTick()
}

// Update routes the toast's own timer messages. Messages for other toasts are
// ignored.
func (t *Toast) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.ID == t.id {
			return t.Tick()
		}
	case ExpireMsg:
		if msg.ID == t.id {
			return t.Expire()
		}
	}
	return nil
}

// Tick advances the animation one step and returns the follow-up timer, if
// any. It is the single handler for every phase.
func (t *Toast) Tick() tea.Cmd {
	switch t.phase {
	case FadingIn:
		t.opacity += opacityStep
		if t.opacity >= opacityCeiling {
			t.opacity = opacityCeiling
			t.phase = Visible
			return t.displayTimer()
		}
		return t.nextTick()
	case FadingOut:
		t.opacity -= opacityStep
		if t.opacity <= 0 {
			t.opacity = 0
			t.phase = Disposed
			return nil
		}
		return t.nextTick()
	case Disposed:
		debug.Violation("tick on disposed toast %d", t.id)
	}
	// Visible: a stray tick has nothing to animate.
	return nil
}

// Expire ends the display period. Only a Visible toast reacts; an expiry that
// arrives after a manual dismissal is stale and ignored.
func (t *Toast) Expire() tea.Cmd {
	if t.phase != Visible {
		return nil
	}
	return t.Dismiss()
}

// Dismiss starts the fade-out immediately. It is idempotent: a toast that is
// already fading out or disposed is left alone.
func (t *Toast) Dismiss() tea.Cmd {
	if t.fadingOut || t.phase == Disposed {
		return nil
	}
	t.fadingOut = true
	prev := t.phase
	t.phase = FadingOut
	if prev == FadingIn {
		// The fade-in tick chain is still running and carries on as fade-out.
		return nil
	}
	return t.nextTick()
}

func (t *Toast) nextTick() tea.Cmd {
	id := t.id
	return tea.Tick(AnimationDelay, func(time.Time) tea.Msg { return TickMsg{ID: id} })
}

func (t *Toast) displayTimer() tea.Cmd {
	id := t.id
	return tea.Tick(t.displayFor, func(time.Time) tea.Msg { return ExpireMsg{ID: id} })
}
