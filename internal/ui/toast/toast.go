// Package toast renders transient popup lines and adapts the Bubble Tea
// message loop to the poller's Notifier contract.
package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/nvaldez/feedtray/internal/theme"
)

// ShowMsg asks the toast stack to display a new popup.
type ShowMsg struct {
	ID       string
	Text     string
	Duration time.Duration
}

// expireMsg removes a popup after its duration elapsed.
type expireMsg struct {
	ID string
}

// Notifier bridges the poller's popup sink to the Bubble Tea runtime.
// send must be safe to call from any goroutine (tea.Program.Send is).
type Notifier struct {
	send func(tea.Msg)
}

// NewNotifier wraps a program's Send function.
func NewNotifier(send func(tea.Msg)) *Notifier {
	return &Notifier{send: send}
}

// Info displays text as a transient popup for the given duration.
func (n *Notifier) Info(text string, d time.Duration) {
	n.send(ShowMsg{
		ID:       uuid.NewString(),
		Text:     text,
		Duration: d,
	})
}

// toast is one visible popup.
type toast struct {
	id   string
	text string
}

// Model is the Bubble Tea model for the popup stack.
type Model struct {
	toasts []toast
	width  int
}

// New creates an empty toast stack.
func New(width int) Model {
	return Model{width: width}
}

// SetWidth updates the rendering width.
func (m *Model) SetWidth(width int) { m.width = width }

// Active reports whether any popups are visible.
func (m Model) Active() bool { return len(m.toasts) > 0 }

// Update handles show and expiry messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowMsg:
		m.toasts = append(m.toasts, toast{id: msg.ID, text: msg.Text})
		id := msg.ID
		return m, tea.Tick(msg.Duration, func(time.Time) tea.Msg {
			return expireMsg{ID: id}
		})

	case expireMsg:
		kept := m.toasts[:0]
		for _, t := range m.toasts {
			if t.id != msg.ID {
				kept = append(kept, t)
			}
		}
		m.toasts = kept
	}
	return m, nil
}

// View renders the popup stack, newest last.
func (m Model) View() string {
	if len(m.toasts) == 0 {
		return ""
	}

	out := ""
	for i, t := range m.toasts {
		if i > 0 {
			out += "\n"
		}
		out += theme.ToastStyle.MaxWidth(m.width).Render(t.text)
	}
	return out
}
