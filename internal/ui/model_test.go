package ui

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/go-logr/logr"

	"volumetric/internal/dialog"
	"volumetric/internal/toast"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (s *recordingSender) Send(msg tea.Msg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}

func newTestModel(expectOp bool, notices ...Notice) Model {
	return NewModel(nil, "test", expectOp, notices, time.Second, logr.Discard())
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	msg := cmd()
	if _, ok := msg.(tea.QuitMsg); ok {
		return true
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if isQuit(c) {
				return true
			}
		}
	}
	return false
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// finishToasts drives every live toast to disposal with synthetic ticks.
func finishToasts(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	var last tea.Cmd
	for i := 0; i < 200 && len(m.toasts) > 0; i++ {
		for _, ts := range m.toasts {
			if ts.Phase() == toast.Visible {
				m, last = update(t, m, toast.ExpireMsg{ID: ts.ID()})
			}
		}
		if len(m.toasts) == 0 {
			break
		}
		m, last = update(t, m, toast.TickMsg{ID: m.toasts[0].ID()})
	}
	if len(m.toasts) != 0 {
		t.Fatalf("%d toasts still alive", len(m.toasts))
	}
	return m, last
}

func TestNotices_ShownAfterFirstResize(t *testing.T) {
	m := newTestModel(false, Notice{Kind: toast.Info, Title: "Hello", Message: "World"})
	if len(m.toasts) != 0 {
		t.Fatal("notices wait for the window size")
	}
	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if len(m.toasts) != 1 || cmd == nil {
		t.Fatalf("toasts = %d, want 1 with a tick scheduled", len(m.toasts))
	}
	p := m.toasts[0].Position()
	if p.X != 100-toast.DefaultWidth-2 || p.Y != 2 {
		t.Errorf("toast at %+v, want top-right of the window", p)
	}
	if !strings.Contains(m.View(), "Hello") {
		t.Error("View() should draw the toast")
	}
}

func TestQuitsWhenLastToastDisposes(t *testing.T) {
	m := newTestModel(false, Notice{Kind: toast.Success, Title: "Done"})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, cmd := finishToasts(t, m)
	if !isQuit(cmd) {
		t.Error("model should quit once idle")
	}
}

func TestDismissNewest(t *testing.T) {
	m := newTestModel(true)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, notifyMsg{kind: toast.Info, title: "first"})
	m, _ = update(t, m, notifyMsg{kind: toast.Error, title: "second"})

	m, _ = update(t, m, runes("x"))
	if m.toasts[1].Phase() != toast.FadingOut {
		t.Errorf("newest toast phase = %s, want fading out", m.toasts[1].Phase())
	}
	if m.toasts[0].Phase() != toast.FadingIn {
		t.Errorf("older toast phase = %s, want untouched", m.toasts[0].Phase())
	}
	m, _ = update(t, m, runes("x"))
	if m.toasts[0].Phase() != toast.FadingOut {
		t.Error("second x should dismiss the older toast")
	}
}

func TestClickDismissesToast(t *testing.T) {
	m := newTestModel(true)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, notifyMsg{kind: toast.Warning, title: "Low disk", message: "Free some space"})
	m.View()
	p := m.toasts[0].Position()
	m, _ = update(t, m, tea.MouseMsg{X: p.X + 1, Y: p.Y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.toasts[0].Phase() != toast.FadingOut {
		t.Errorf("phase = %s, want fading out", m.toasts[0].Phase())
	}
}

func TestToastsStack(t *testing.T) {
	m := newTestModel(true)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, notifyMsg{kind: toast.Info, title: "a"})
	m, _ = update(t, m, notifyMsg{kind: toast.Info, title: "b"})
	m.View()
	offs := m.toastOffsets()
	if offs[0] != 0 || offs[1] != m.toasts[0].Height() {
		t.Errorf("offsets = %v, want [0 %d]", offs, m.toasts[0].Height())
	}
}

func TestDialogLifecycle(t *testing.T) {
	m := newTestModel(true)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	d := dialog.New("Processing", "Working")
	m, cmd := update(t, m, openDialogMsg{d: d})
	if m.dialog != d || cmd == nil {
		t.Fatal("dialog should be opened and initialised")
	}

	// Modal: q goes to the dialog instead of quitting.
	m, cmd = update(t, m, runes("q"))
	if isQuit(cmd) {
		t.Fatal("q must not quit while a modal dialog is open")
	}

	m, _ = update(t, m, runes("c"))
	if !d.Confirming() {
		t.Fatal("c should reach the dialog")
	}
	m, _ = update(t, m, runes("y"))
	if !d.IsCancelled() {
		t.Fatal("y should confirm the cancellation")
	}

	d.SetCompleted(false)
	d.Flush()
	m, _ = update(t, m, opDoneMsg{err: errors.New("stopped")})
	if m.Err() == nil {
		t.Error("operation error should be kept")
	}
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.dialog != nil {
		t.Fatal("enter should close the completed dialog")
	}
	if !isQuit(cmd) {
		t.Error("closing the last surface should quit")
	}
}

func TestSecondDialogIgnored(t *testing.T) {
	m := newTestModel(true)
	a, b := dialog.New("a", "s"), dialog.New("b", "s")
	m, _ = update(t, m, openDialogMsg{d: a})
	m, _ = update(t, m, openDialogMsg{d: b})
	if m.dialog != a {
		t.Error("the first dialog must stay active")
	}
}

func TestNonModalLetsQQuit(t *testing.T) {
	m := newTestModel(true)
	m, _ = update(t, m, openDialogMsg{d: dialog.New("bg", "s", dialog.WithNonModal())})
	_, cmd := update(t, m, runes("q"))
	if !isQuit(cmd) {
		t.Error("q should quit while only a non-modal dialog is open")
	}
}

func TestDialogMouseIsTranslated(t *testing.T) {
	m := newTestModel(true)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	d := dialog.New("Processing", "Working")
	m, _ = update(t, m, openDialogMsg{d: d})
	d.Flush()

	view := d.View()
	x, y := m.dialogOrigin()
	// Find the cancel button on the rendered dialog.
	row, col := -1, -1
	for i, line := range strings.Split(view, "\n") {
		if j := strings.Index(line, "[ Cancel ]"); j >= 0 {
			row, col = i, len([]rune(line[:j]))
			break
		}
	}
	if row < 0 {
		t.Fatalf("cancel button not found:\n%s", view)
	}
	m, _ = update(t, m, tea.MouseMsg{X: x + col + 3, Y: y + row, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if !d.Confirming() {
		t.Error("clicking the cancel button should open the prompt")
	}
}

func TestDialogTallerThanWindow(t *testing.T) {
	m := newTestModel(true)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	d := dialog.New("Processing", "Working")
	m, _ = update(t, m, openDialogMsg{d: d})
	d.Flush()

	dh := lipgloss.Height(d.View())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: dh - 2})
	if _, y := m.dialogOrigin(); y >= 0 {
		t.Fatalf("origin y = %d, want the dialog to start above the window", y)
	}

	// Click the button where the window actually draws it.
	row, col := -1, -1
	for i, line := range strings.Split(ansi.Strip(m.View()), "\n") {
		if j := strings.Index(line, "[ Cancel ]"); j >= 0 {
			row, col = i, ansi.StringWidth(line[:j])
			break
		}
	}
	if row < 0 {
		t.Fatalf("cancel button not drawn:\n%s", m.View())
	}
	m, _ = update(t, m, tea.MouseMsg{X: col + 3, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if !d.Confirming() {
		t.Error("clicking the drawn cancel button should open the prompt")
	}
}

func TestHost_OneDialogAtATime(t *testing.T) {
	s := &recordingSender{}
	h := newHost(s, logr.Discard())

	d, err := h.Open("first", "s")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := h.Open("second", "s"); !errors.Is(err, ErrDialogActive) {
		t.Fatalf("err = %v, want ErrDialogActive", err)
	}

	d.SetCompleted(true)
	d.Flush()
	d.Close()
	if _, err := h.Open("third", "s"); err != nil {
		t.Fatalf("Open after close: %v", err)
	}

	h.Notify(toast.Info, "hi", "there")
	if len(s.msgs) != 3 {
		t.Fatalf("sent %d messages, want 3", len(s.msgs))
	}
	if _, ok := s.msgs[2].(notifyMsg); !ok {
		t.Errorf("last message = %T, want notifyMsg", s.msgs[2])
	}
}
