package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"volumetric/internal/dialog"
	"volumetric/internal/toast"
)

// maxActivity bounds the activity list shown in the background.
const maxActivity = 8

// Notice is a toast to show as soon as the window knows its size.
type Notice struct {
	Kind    toast.Kind
	Title   string
	Message string
}

// anchor exposes the window as the toasts' positioning host.
type anchor struct{ w, h int }

func (a anchor) Visible() bool { return a.w > 0 && a.h > 0 }
func (a anchor) Bounds() toast.Rect {
	return toast.Rect{Width: a.w, Height: a.h}
}

type Model struct {
	cancel context.CancelFunc
	log    logr.Logger

	title         string
	toastDuration time.Duration

	// Toasts oldest first; the newest is drawn last.
	toasts  []*toast.Toast
	notices []Notice
	dialog  *dialog.Dialog

	// expectOp is set while a background operation is still running.
	expectOp bool
	opErr    error
	activity []string

	width, height int
	sized         bool
	// dark is the terminal backdrop, resolved before the program starts.
	dark   bool
	styles Styles
}

// NewModel builds the host window. expectOp keeps the window open until an
// opDoneMsg arrives.
func NewModel(cancel context.CancelFunc, title string, expectOp bool, notices []Notice, toastDuration time.Duration, log logr.Logger) Model {
	if cancel == nil {
		cancel = func() {}
	}
	return Model{
		cancel:        cancel,
		log:           log,
		title:         title,
		toastDuration: toastDuration,
		notices:       notices,
		expectOp:      expectOp,
		styles:        defaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		var cmds []tea.Cmd
		if !m.sized {
			m.sized = true
			for _, n := range m.notices {
				cmds = append(cmds, m.showToast(n))
			}
			m.notices = nil
		}
		if m.dialog != nil {
			cmds = append(cmds, m.dialog.Update(msg))
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case notifyMsg:
		cmd := m.showToast(Notice{Kind: msg.kind, Title: msg.title, Message: msg.message})
		return m, cmd

	case openDialogMsg:
		if m.dialog != nil {
			// Host.Open guards this; a stray second dialog is ignored.
			m.log.Info("ignoring second dialog", "title", msg.d.Title())
			return m, nil
		}
		m.dialog = msg.d
		m.addActivity("Started: " + msg.d.Title())
		var cmd tea.Cmd
		if m.width > 0 {
			cmd = m.dialog.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		}
		return m, tea.Batch(m.dialog.Init(), cmd)

	case opDoneMsg:
		m.expectOp = false
		m.opErr = msg.err
		if msg.err != nil {
			m.addActivity("Finished with error: " + msg.err.Error())
		} else {
			m.addActivity("Finished")
		}
		return m, m.quitIfIdle()

	case toast.TickMsg, toast.ExpireMsg:
		var cmds []tea.Cmd
		for _, t := range m.toasts {
			cmds = append(cmds, t.Update(msg))
		}
		m.pruneToasts()
		cmds = append(cmds, m.quitIfIdle())
		return m, tea.Batch(cmds...)
	}

	if m.dialog != nil {
		cmd := m.dialog.Update(msg)
		return m, tea.Batch(cmd, m.afterDialog())
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return *m, tea.Quit
	case "x":
		return *m, m.dismissNewest()
	}
	modal := m.dialog != nil && m.dialog.Modal()
	if msg.String() == "q" && !modal {
		m.cancel()
		return *m, tea.Quit
	}
	if m.dialog != nil {
		cmd := m.dialog.Update(msg)
		return *m, tea.Batch(cmd, m.afterDialog())
	}
	return *m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return *m, nil
	}
	// Newest toast is on top.
	offs := m.toastOffsets()
	for i := len(m.toasts) - 1; i >= 0; i-- {
		if m.toasts[i].Contains(msg.X, msg.Y-offs[i]) {
			return *m, m.toasts[i].Dismiss()
		}
	}
	if m.dialog == nil {
		return *m, nil
	}
	x, y := m.dialogOrigin()
	local := msg
	local.X, local.Y = msg.X-x, msg.Y-y
	cmd := m.dialog.Update(local)
	return *m, tea.Batch(cmd, m.afterDialog())
}

// afterDialog drops the dialog once the user has closed it.
func (m *Model) afterDialog() tea.Cmd {
	if m.dialog == nil {
		return nil
	}
	select {
	case <-m.dialog.Done():
	default:
		return nil
	}
	m.addActivity("Closed: " + m.dialog.Title())
	m.dialog = nil
	return m.quitIfIdle()
}

func (m *Model) showToast(n Notice) tea.Cmd {
	opts := []toast.Option{toast.WithDisplayDuration(m.toastDuration), toast.WithDarkBackground(m.dark)}
	if m.width > 0 && m.width < toast.DefaultWidth+4 {
		opts = append(opts, toast.WithWidth(max(16, m.width-4)))
	}
	t := toast.Show(n.Kind, n.Title, n.Message, anchor{w: m.width, h: m.height}, opts...)
	m.toasts = append(m.toasts, t)
	m.addActivity(n.Kind.Icon() + " " + n.Title)
	return t.Init()
}

func (m *Model) dismissNewest() tea.Cmd {
	for i := len(m.toasts) - 1; i >= 0; i-- {
		t := m.toasts[i]
		if t.Phase() == toast.FadingIn || t.Phase() == toast.Visible {
			return t.Dismiss()
		}
	}
	return nil
}

func (m *Model) pruneToasts() {
	live := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.Disposed() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.toasts); i++ {
		m.toasts[i] = nil
	}
	m.toasts = live
}

// idle reports whether nothing is left to show or wait for.
func (m *Model) idle() bool {
	return !m.expectOp && m.dialog == nil && len(m.toasts) == 0 && len(m.notices) == 0
}

func (m *Model) quitIfIdle() tea.Cmd {
	if m.idle() {
		return tea.Quit
	}
	return nil
}

func (m *Model) addActivity(line string) {
	m.activity = append(m.activity, time.Now().Format("15:04:05")+"  "+line)
	if n := len(m.activity); n > maxActivity {
		m.activity = m.activity[n-maxActivity:]
	}
}

// Err returns the operation's error, if any.
func (m Model) Err() error { return m.opErr }
