// Package progress defines how a long-running operation reports to whatever
// surface is watching it.
package progress

import "time"

// Sink receives progress from an operation. Implementations must accept calls
// from any goroutine and must not block the caller on rendering.
type Sink interface {
	// SetStatus replaces the one-line description of the current phase.
	SetStatus(text string)
	// SetProgress reports percent complete; values outside 0..100 are clamped.
	SetProgress(percent int)
	// SetIndeterminate switches between a percent display and a busy indicator.
	SetIndeterminate(on bool)
	// AppendLog adds a line to the operation log, timestamped at call time.
	AppendLog(line string)
	// IsCancelled reports whether the user asked the operation to stop. The
	// operation polls it at safe points; nothing is interrupted.
	IsCancelled() bool
	// SetCompleted records the final outcome. Only the first call counts.
	SetCompleted(success bool)
}

// Outcome is the terminal state of an operation.
type Outcome int

const (
	Pending Outcome = iota
	Succeeded
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

// Terminal reports whether o is Succeeded or Failed.
func (o Outcome) Terminal() bool { return o != Pending }

// Fixed log and status texts.
const (
	MsgStarted      = "Operation started"
	MsgStarting     = "Starting..."
	MsgProcessing   = "Processing..."
	MsgSucceeded    = "Operation completed successfully"
	MsgFailed       = "Operation failed"
	MsgCancelAsked  = "Cancellation requested by user"
	MsgCancelPrompt = "Are you sure you want to cancel the operation?"
)

// Clamp limits percent to 0..100.
func Clamp(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// Remaining estimates time left as elapsed*100/percent - elapsed. It reports
// false at percent <= 0, where no estimate is possible.
func Remaining(elapsed time.Duration, percent int) (time.Duration, bool) {
	if percent <= 0 {
		return 0, false
	}
	if elapsed < 0 {
		elapsed = 0
	}
	ms := elapsed.Milliseconds()
	est := ms*100/int64(percent) - ms
	return time.Duration(est) * time.Millisecond, true
}
