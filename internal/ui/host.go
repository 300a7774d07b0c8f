package ui

import (
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"volumetric/internal/dialog"
	"volumetric/internal/toast"
)

// ErrDialogActive is returned by Open while another dialog is still shown.
var ErrDialogActive = errors.New("a progress dialog is already open")

type sender interface {
	Send(msg tea.Msg)
}

// Host is the goroutine-safe handle producers use to reach the window: it
// posts toasts and opens progress dialogs.
type Host struct {
	prog sender
	log  logr.Logger

	mu     sync.Mutex
	active *dialog.Dialog
}

func newHost(s sender, log logr.Logger) *Host {
	return &Host{prog: s, log: log}
}

// Notify shows a toast. Safe from any goroutine.
func (h *Host) Notify(kind toast.Kind, title, message string) {
	h.log.V(1).Info("toast", "kind", kind.String(), "title", title)
	h.prog.Send(notifyMsg{kind: kind, title: title, message: message})
}

// Open creates a progress dialog and shows it. Only one dialog may be open
// at a time; a second Open before the first is closed fails with
// ErrDialogActive.
func (h *Host) Open(title, status string, opts ...dialog.Option) (*dialog.Dialog, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active != nil {
		select {
		case <-h.active.Done():
		default:
			return nil, ErrDialogActive
		}
	}
	opts = append([]dialog.Option{dialog.WithLogger(h.log.WithName("dialog"))}, opts...)
	d := dialog.New(title, status, opts...)
	h.active = d
	h.prog.Send(openDialogMsg{d: d})
	return d, nil
}
