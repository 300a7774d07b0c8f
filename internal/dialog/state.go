package dialog

import (
	"time"

	"volumetric/internal/debug"
	"volumetric/internal/progress"
	"volumetric/internal/theme"
	"volumetric/internal/util/format"
)

// Entry is one log line.
type Entry struct {
	At   time.Time
	Line string
}

// String renders the entry the way the log view shows it.
func (e Entry) String() string {
	return "[" + e.At.Format("15:04:05") + "] " + e.Line
}

// State is the visible model of the dialog.
type State struct {
	Title         string
	Status        string
	Percent       int
	Indeterminate bool
	// Estimated is set once a remaining-time estimate has been computed.
	Estimated bool
	Remaining time.Duration
	// TimeLabel holds the estimate while running and the total afterwards.
	TimeLabel       string
	Log             []Entry
	StartedAt       time.Time
	CancelRequested bool
	Outcome         progress.Outcome
	// Accent is the status color; empty means the default text color.
	Accent string
	Total  time.Duration
	Closed bool
}

// Snapshot copies the current state. UI loop only; call Flush first to see
// queued updates.
func (d *Dialog) Snapshot() State {
	s := d.state
	s.Log = append([]Entry(nil), d.state.Log...)
	return s
}

// terminal reports whether the outcome is settled, flagging the attempted
// mutation as a violation.
func (d *Dialog) terminal(op string) bool {
	if d.state.Outcome.Terminal() {
		debug.Violation("%s on completed dialog %q", op, d.title)
		return true
	}
	return false
}

func (d *Dialog) applyProgress(percent int, at time.Time) {
	if d.terminal("SetProgress") {
		return
	}
	s := &d.state
	s.Percent = progress.Clamp(percent)
	rem, ok := progress.Remaining(at.Sub(s.StartedAt), s.Percent)
	if !ok {
		return
	}
	s.Estimated = true
	s.Remaining = rem
	if rem > 0 {
		s.TimeLabel = "Estimated time: " + format.Duration(rem)
	}
}

func (d *Dialog) applyIndeterminate(on bool) {
	if d.terminal("SetIndeterminate") {
		return
	}
	d.state.Indeterminate = on
	if on {
		d.state.TimeLabel = ""
		d.state.Estimated = false
		d.state.Remaining = 0
	}
}

func (d *Dialog) applyStatus(text string) {
	if d.terminal("SetStatus") {
		return
	}
	d.state.Status = text
}

func (d *Dialog) applyLog(line string, at time.Time) {
	if d.terminal("AppendLog") {
		return
	}
	d.appendEntry(line, at)
}

func (d *Dialog) appendEntry(line string, at time.Time) {
	d.state.Log = append(d.state.Log, Entry{At: at, Line: line})
}

func (d *Dialog) applyCompleted(success bool, at time.Time) {
	if d.terminal("SetCompleted") {
		return
	}
	s := &d.state
	if success {
		s.Outcome = progress.Succeeded
		s.Percent = 100
		s.Status = progress.MsgSucceeded
		s.Accent = theme.Success
	} else {
		s.Outcome = progress.Failed
		s.Status = progress.MsgFailed
		s.Accent = theme.Error
	}
	s.Indeterminate = false
	s.Estimated = false
	s.Remaining = 0
	s.Total = at.Sub(s.StartedAt)
	s.TimeLabel = "Total time: " + format.Duration(s.Total)
	d.appendEntry(s.Status, at)
	// The cancel affordance is gone, and any open prompt with it.
	d.confirm = nil
	d.log.Info("operation finished", "title", d.title, "outcome", s.Outcome.String(),
		"elapsed", s.Total.String(), "cancelRequested", s.CancelRequested)
}

// RequestCancel opens the confirmation prompt. It reports false when there is
// nothing to cancel: the operation has finished, a cancellation was already
// committed, or the prompt is already open.
func (d *Dialog) RequestCancel() bool {
	if d.state.Outcome.Terminal() || d.state.CancelRequested || d.confirm != nil {
		return false
	}
	d.confirm = newConfirm(progress.MsgCancelPrompt)
	return true
}

// Confirming reports whether the cancel prompt is open.
func (d *Dialog) Confirming() bool { return d.confirm != nil }

// ConfirmCancel answers the open prompt. Yes commits the cancellation: the
// flag is set, the request is logged and the cancel button is disabled.
func (d *Dialog) ConfirmCancel(yes bool) {
	if d.confirm == nil {
		return
	}
	d.confirm = nil
	if !yes || d.state.CancelRequested {
		return
	}
	// Producer entries stamped before the answer go first, and a completion
	// already queued leaves nothing to cancel.
	d.Flush()
	if d.state.Outcome.Terminal() {
		return
	}
	d.cancelled.Store(true)
	d.state.CancelRequested = true
	d.appendEntry(progress.MsgCancelAsked, d.now())
	d.refreshLog()
	d.log.Info("cancellation requested", "title", d.title)
}

// Close disposes a completed dialog. It reports false while the operation is
// still pending, since only the close button of a finished dialog disposes it.
func (d *Dialog) Close() bool {
	if !d.state.Outcome.Terminal() {
		debug.Violation("Close on pending dialog %q", d.title)
		return false
	}
	d.closeOnce.Do(func() {
		d.state.Closed = true
		close(d.done)
		d.log.V(1).Info("dialog closed", "title", d.title)
	})
	return true
}
