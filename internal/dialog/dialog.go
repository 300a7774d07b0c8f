// Package dialog implements the progress dialog: a long-lived surface that a
// background operation drives with percent, status and log updates, and that
// the user can ask to stop.
//
// Producers call the exported mutators from any goroutine. Each call is
// timestamped and appended to the dialog's mailbox, and the Bubble Tea loop
// applies the queued commands in order when it receives the wake-up message
// produced by Listen. No producer ever writes dialog state directly.
package dialog

import (
	"sync"
	"sync/atomic"
	"time"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"volumetric/internal/progress"
	"volumetric/internal/theme"
	"volumetric/internal/widget"
)

const (
	defaultWidth = 64
	logHeight    = 8
)

var _ progress.Sink = (*Dialog)(nil)

// command is a queued mutation, applied on the UI loop with the time at which
// the producer issued it.
type command struct {
	at    time.Time
	apply func(d *Dialog, at time.Time)
}

// Dialog is a progress dialog. Create it with New.
type Dialog struct {
	title string
	modal bool
	now   func() time.Time
	log   logr.Logger

	mu      sync.Mutex
	pending []command
	wake    chan struct{}

	cancelled atomic.Bool
	done      chan struct{}
	closeOnce sync.Once

	// Everything below is owned by the UI loop.
	state   State
	confirm *confirm
	styles  theme.Styles
	bar     bubblesprogress.Model
	spin    spinner.Model
	logView viewport.Model
	width   int
	hits    []hit
}

type hit struct {
	rect   widget.Rect
	action func()
}

// Option configures a Dialog.
type Option func(*Dialog)

// WithNonModal lets the host keep handling input while the dialog is shown.
func WithNonModal() Option {
	return func(d *Dialog) {
		d.modal = false
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Dialog) {
		if now != nil {
			d.now = now
		}
	}
}

// WithLogger attaches a logger for lifecycle events.
func WithLogger(l logr.Logger) Option {
	return func(d *Dialog) {
		d.log = l
	}
}

// New creates a dialog showing initialStatus and logs the start entry. The
// dialog is modal unless WithNonModal is given.
func New(title, initialStatus string, opts ...Option) *Dialog {
	d := &Dialog{
		title:  title,
		modal:  true,
		now:    time.Now,
		log:    logr.Discard(),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		styles: theme.Default(),
		width:  defaultWidth,
	}
	for _, o := range opts {
		o(d)
	}
	d.state = State{
		Title:     title,
		Status:    progress.MsgStarting,
		StartedAt: d.now(),
	}
	d.spin = spinner.New(spinner.WithSpinner(spinner.Dot))
	d.spin.Style = d.styles.Spinner
	d.bar = bubblesprogress.New(
		bubblesprogress.WithDefaultGradient(),
		bubblesprogress.WithoutPercentage(),
	)
	d.logView = viewport.New(d.innerWidth()-4, logHeight)
	d.resize(d.width)

	d.SetStatus(initialStatus)
	d.AppendLog(progress.MsgStarted)
	d.log.V(1).Info("dialog opened", "title", title, "modal", d.modal)
	return d
}

// Title returns the dialog title.
func (d *Dialog) Title() string { return d.title }

// Modal reports whether the dialog captures all input while shown.
func (d *Dialog) Modal() bool { return d.modal }

// Done is closed once the dialog has been closed by the user.
func (d *Dialog) Done() <-chan struct{} { return d.done }

// IsCancelled reports whether the user confirmed a cancellation. Safe from any
// goroutine.
func (d *Dialog) IsCancelled() bool { return d.cancelled.Load() }

// SetProgress queues a percent update. Values are clamped to 0..100.
func (d *Dialog) SetProgress(percent int) {
	d.post(func(d *Dialog, at time.Time) { d.applyProgress(percent, at) })
}

// SetIndeterminate queues a switch between percent and busy display.
func (d *Dialog) SetIndeterminate(on bool) {
	d.post(func(d *Dialog, _ time.Time) { d.applyIndeterminate(on) })
}

// SetStatus queues a status line replacement.
func (d *Dialog) SetStatus(text string) {
	d.post(func(d *Dialog, _ time.Time) { d.applyStatus(text) })
}

// AppendLog queues a log line. The entry is stamped now, not when displayed.
func (d *Dialog) AppendLog(line string) {
	d.post(func(d *Dialog, at time.Time) { d.applyLog(line, at) })
}

// SetCompleted queues the terminal transition. Only the first call counts.
func (d *Dialog) SetCompleted(success bool) {
	d.post(func(d *Dialog, at time.Time) { d.applyCompleted(success, at) })
}

// post stamps and enqueues a command. The timestamp is taken under the lock so
// queue order and timestamp order agree across producers.
func (d *Dialog) post(apply func(*Dialog, time.Time)) {
	d.mu.Lock()
	d.pending = append(d.pending, command{at: d.now(), apply: apply})
	d.mu.Unlock()
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// flushMsg tells the UI loop that d has queued commands.
type flushMsg struct{ d *Dialog }

// Listen waits for producers to queue work. The UI loop must issue it again
// after every flush; Update does that.
func (d *Dialog) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-d.wake:
			return flushMsg{d: d}
		case <-d.done:
			return nil
		}
	}
}

// Flush applies every queued command in order. UI loop only.
func (d *Dialog) Flush() {
	d.mu.Lock()
	cmds := d.pending
	d.pending = nil
	d.mu.Unlock()
	if len(cmds) == 0 {
		return
	}
	before := len(d.state.Log)
	for _, c := range cmds {
		c.apply(d, c.at)
	}
	if len(d.state.Log) != before {
		d.refreshLog()
	}
}
