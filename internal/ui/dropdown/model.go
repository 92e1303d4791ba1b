// Package dropdown renders one feed's preview panel: the most recent
// items, an explicit empty-state placeholder, and an optional history
// mode backed by the local archive.
package dropdown

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvaldez/feedtray/internal/keys"
	"github.com/nvaldez/feedtray/internal/model"
	"github.com/nvaldez/feedtray/internal/theme"
	"github.com/nvaldez/feedtray/internal/ui"
)

// historyLimit is how many archived items history mode shows.
const historyLimit = 50

// Model is the Bubble Tea model for a single feed panel.
type Model struct {
	feed        model.FeedKind
	label       string
	keys        *keys.KeyMap
	items       []model.Item
	history     []model.Item
	historyMode bool
	unread      int
	selectedIdx int
	width       int
	height      int
	focused     bool
}

// New creates a panel for the given feed.
func New(feed model.FeedKind, label string, km *keys.KeyMap, width, height int) Model {
	return Model{
		feed:   feed,
		label:  label,
		keys:   km,
		width:  width,
		height: height,
	}
}

// Feed returns the feed this panel renders.
func (m Model) Feed() model.FeedKind { return m.feed }

// Unread returns the last unread count applied to this panel.
func (m Model) Unread() int { return m.unread }

// HistoryMode reports whether the panel shows the archive.
func (m Model) HistoryMode() bool { return m.historyMode }

// Selected returns the currently selected item, if any.
func (m Model) Selected() (model.Item, bool) {
	visible := m.visible()
	if len(visible) == 0 || m.selectedIdx >= len(visible) {
		return model.Item{}, false
	}
	return visible[m.selectedIdx], true
}

// SetItems replaces the live preview with a fresh poll result.
func (m *Model) SetItems(items []model.Item, unread int) {
	m.items = items
	m.unread = unread
	m.clampSelection()
}

// SetHistory replaces the archive view contents.
func (m *Model) SetHistory(items []model.Item) {
	m.history = items
	m.clampSelection()
}

// ToggleHistory switches between live preview and archive view. It
// reports whether history mode is now active, so the app can load the
// archive on demand.
func (m *Model) ToggleHistory() bool {
	m.historyMode = !m.historyMode
	m.selectedIdx = 0
	return m.historyMode
}

// MarkItemRead flips the local read flag after a successful backend
// mark-read, keeping the panel consistent without waiting for a poll.
func (m *Model) MarkItemRead(itemID int64) {
	for i := range m.items {
		if m.items[i].ID == itemID {
			m.items[i].Unread = false
		}
	}
	for i := range m.history {
		if m.history[i].ID == itemID {
			m.history[i].Unread = false
		}
	}
}

// SetUnread overrides the unread count (e.g., after a mark-read response).
func (m *Model) SetUnread(count int) { m.unread = count }

// SetFocused toggles the focus highlight.
func (m *Model) SetFocused(focused bool) { m.focused = focused }

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles navigation keys when the panel is focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	visible := m.visible()
	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.selectedIdx < len(visible)-1 {
			m.selectedIdx++
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}
	}
	return m, nil
}

// View renders the panel.
func (m Model) View() string {
	var b strings.Builder

	heading := ui.CountLabel(m.label, m.unread)
	if m.historyMode {
		heading += " - history"
	}
	b.WriteString(theme.PanelTitleStyle.Render(heading))
	b.WriteString("\n")

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(theme.EmptyStyle.Render(m.emptyText()))
	} else {
		now := time.Now()
		for i, item := range visible {
			b.WriteString(renderItem(item, m.focused && i == m.selectedIdx, now))
			if i < len(visible)-1 {
				b.WriteString("\n")
			}
		}
	}

	style := theme.PanelStyle
	if m.focused {
		style = theme.FocusedPanelStyle
	}
	return style.Width(m.width - style.GetHorizontalFrameSize()).
		MaxHeight(m.height).
		Render(b.String())
}

// visible returns the item list for the active mode.
func (m Model) visible() []model.Item {
	if m.historyMode {
		return m.history
	}
	return m.items
}

func (m Model) emptyText() string {
	if m.feed == model.FeedMessages {
		return "No messages"
	}
	return "No notifications"
}

func (m *Model) clampSelection() {
	if n := len(m.visible()); m.selectedIdx >= n {
		m.selectedIdx = max(0, n-1)
	}
}

// HistoryLimit is exposed so the app requests a consistent page size.
func HistoryLimit() int { return historyLimit }
