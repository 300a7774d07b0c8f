package progress

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"volumetric/internal/util/format"
)

// Plain writes progress as timestamped lines, for runs without a terminal UI.
// Cancellation follows the context given to NewPlain.
type Plain struct {
	ctx   context.Context
	now   func() time.Time
	start time.Time

	mu            sync.Mutex
	out           io.Writer
	percent       int
	indeterminate bool
	outcome       Outcome
}

// NewPlain returns a Sink that writes to w.
func NewPlain(ctx context.Context, w io.Writer) *Plain {
	return newPlain(ctx, w, time.Now)
}

func newPlain(ctx context.Context, w io.Writer, now func() time.Time) *Plain {
	p := &Plain{ctx: ctx, now: now, out: w}
	p.start = now()
	p.AppendLog(MsgStarted)
	return p
}

func (p *Plain) SetStatus(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.outcome.Terminal() {
		return
	}
	p.printf("%s\n", text)
}

func (p *Plain) SetProgress(percent int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.outcome.Terminal() {
		return
	}
	p.percent = Clamp(percent)
	p.indeterminate = false
	line := fmt.Sprintf("%3d%%", p.percent)
	if rem, ok := Remaining(p.now().Sub(p.start), p.percent); ok && rem > 0 {
		line += " (estimated time: " + format.Duration(rem) + ")"
	}
	p.printf("%s\n", line)
}

func (p *Plain) SetIndeterminate(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.outcome.Terminal() || p.indeterminate == on {
		return
	}
	p.indeterminate = on
	if on {
		p.printf("%s\n", MsgProcessing)
	}
}

func (p *Plain) AppendLog(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.outcome.Terminal() {
		return
	}
	p.printf("[%s] %s\n", p.now().Format("15:04:05"), line)
}

func (p *Plain) IsCancelled() bool {
	return p.ctx.Err() != nil
}

func (p *Plain) SetCompleted(success bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.outcome.Terminal() {
		return
	}
	msg := MsgFailed
	p.outcome = Failed
	if success {
		msg = MsgSucceeded
		p.outcome = Succeeded
		p.percent = 100
	}
	p.printf("[%s] %s (total time: %s)\n", p.now().Format("15:04:05"), msg, format.Duration(p.now().Sub(p.start)))
}

// Outcome returns the recorded outcome.
func (p *Plain) Outcome() Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.outcome
}

func (p *Plain) printf(f string, args ...any) {
	fmt.Fprintf(p.out, f, args...)
}
