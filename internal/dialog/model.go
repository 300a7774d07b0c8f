package dialog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"volumetric/internal/progress"
	"volumetric/internal/theme"
	"volumetric/internal/widget"
)

// Frame insets: rounded border plus Padding(1, 2).
const (
	frameX = 3
	frameY = 2
)

// Init starts listening for producer updates and animates the busy spinner.
func (d *Dialog) Init() tea.Cmd {
	return tea.Batch(d.Listen(), d.spin.Tick)
}

// Update handles queued producer updates, input and resizes. Mouse
// coordinates must be relative to the dialog's top-left cell.
func (d *Dialog) Update(msg tea.Msg) tea.Cmd {
	if d.state.Closed {
		return nil
	}
	switch msg := msg.(type) {
	case flushMsg:
		if msg.d != d {
			return nil
		}
		d.Flush()
		return d.Listen()
	case tea.KeyMsg:
		d.handleKey(msg.String())
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			d.click(msg.X, msg.Y)
		}
	case tea.WindowSizeMsg:
		d.resize(min(defaultWidth, msg.Width-4))
	case spinner.TickMsg:
		var cmd tea.Cmd
		d.spin, cmd = d.spin.Update(msg)
		return cmd
	}
	return nil
}

func (d *Dialog) handleKey(key string) {
	if d.confirm != nil {
		switch d.confirm.handleKey(key) {
		case answerYes:
			d.ConfirmCancel(true)
		case answerNo:
			d.ConfirmCancel(false)
		}
		return
	}
	if d.state.Outcome.Terminal() {
		switch key {
		case "enter", "esc", "q", "c":
			d.Close()
		}
		return
	}
	switch key {
	case "c", "esc":
		d.RequestCancel()
	}
}

func (d *Dialog) click(x, y int) {
	for _, h := range d.hits {
		if h.rect.Contains(x, y) {
			h.action()
			return
		}
	}
}

func (d *Dialog) resize(width int) {
	d.width = max(32, width)
	d.logView.Width = d.innerWidth() - 4
	d.logView.Height = logHeight
	d.bar.Width = max(10, d.innerWidth()-18)
	d.refreshLog()
}

func (d *Dialog) innerWidth() int { return d.width - 2*frameX }

// refreshLog re-renders the log into the viewport and scrolls to the newest
// entry.
func (d *Dialog) refreshLog() {
	wrap := lipgloss.NewStyle().Width(max(1, d.logView.Width))
	lines := make([]string, len(d.state.Log))
	for i, e := range d.state.Log {
		lines[i] = wrap.Render(e.String())
	}
	d.logView.SetContent(strings.Join(lines, "\n"))
	d.logView.GotoBottom()
}

// View renders the dialog and records the hit boxes of its buttons.
func (d *Dialog) View() string {
	if d.state.Closed {
		return ""
	}
	s := d.styles
	inner := d.innerWidth()

	statusStyle := s.Bold
	if d.state.Accent != "" {
		statusStyle = statusStyle.Foreground(lipgloss.Color(d.state.Accent))
	}
	status := statusStyle.Render(d.state.Status)
	timeLabel := s.Subtitle.Render(d.state.TimeLabel)
	gap := max(1, inner-lipgloss.Width(status)-lipgloss.Width(timeLabel))
	top := status + strings.Repeat(" ", gap) + timeLabel

	logBox := s.LogBox.Width(inner - 2).Render(d.logView.View())

	above := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(d.title),
		"",
		top,
		d.viewBar(),
		"",
		logBox,
		"",
	)
	rowY := frameY + lipgloss.Height(above)

	d.hits = d.hits[:0]
	var footer string
	switch {
	case d.confirm != nil:
		row, rects := widget.Row(d.confirm.buttons()...)
		prompt := s.Warning.Render(d.confirm.prompt)
		footer = lipgloss.JoinVertical(lipgloss.Left, prompt, row)
		d.addHits(rects, rowY+1, func() { d.ConfirmCancel(true) }, func() { d.ConfirmCancel(false) })
	case d.state.Outcome.Terminal():
		row, rects := widget.Row(widget.Button{Label: "Close", Accent: theme.Primary, Focused: true})
		footer = row
		d.addHits(rects, rowY, func() { d.Close() })
	default:
		row, rects := widget.Row(widget.Button{
			Label:    "Cancel",
			Accent:   theme.Error,
			Outline:  true,
			Disabled: d.state.CancelRequested,
		})
		footer = row
		if !d.state.CancelRequested {
			d.addHits(rects, rowY, func() { d.RequestCancel() })
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, above, footer, s.Faint.Render(d.help()))
	return s.Frame.Width(d.width - 2).Render(body)
}

func (d *Dialog) addHits(rects []widget.Rect, y int, actions ...func()) {
	for i, r := range rects {
		if i >= len(actions) {
			break
		}
		r.X += frameX
		r.Y = y
		d.hits = append(d.hits, hit{rect: r, action: actions[i]})
	}
}

func (d *Dialog) viewBar() string {
	st := d.state
	if st.Indeterminate && !st.Outcome.Terminal() {
		return d.spin.View() + " " + progress.MsgProcessing
	}
	label := fmt.Sprintf("%d%%", st.Percent)
	if st.Outcome == progress.Succeeded {
		label = "100% - Completed"
	}
	return d.bar.ViewAs(float64(st.Percent)/100) + " " + label
}

func (d *Dialog) help() string {
	switch {
	case d.confirm != nil:
		return "y/n • ←/→ switch • enter confirm"
	case d.state.Outcome.Terminal():
		return "enter/esc close"
	case d.state.CancelRequested:
		return "cancellation requested, waiting for the operation to stop"
	default:
		return "c/esc cancel"
	}
}
