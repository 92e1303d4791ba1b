// Package app wires the poller, the archive, and the UI panels into the
// root Bubble Tea model. The poller instance is constructed and owned by
// the caller; the app only subscribes its Start/Stop to the terminal's
// focus and blur signals.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/nvaldez/feedtray/internal/feed"
	"github.com/nvaldez/feedtray/internal/keys"
	"github.com/nvaldez/feedtray/internal/model"
	"github.com/nvaldez/feedtray/internal/poll"
	"github.com/nvaldez/feedtray/internal/store"
	"github.com/nvaldez/feedtray/internal/theme"
	"github.com/nvaldez/feedtray/internal/ui"
	"github.com/nvaldez/feedtray/internal/ui/dropdown"
	"github.com/nvaldez/feedtray/internal/ui/settings"
	"github.com/nvaldez/feedtray/internal/ui/toast"
)

// requestTimeout bounds user-triggered backend calls (mark-read).
const requestTimeout = 10 * time.Second

// ViewState represents the current active view.
type ViewState int

const (
	ViewTray ViewState = iota
	ViewSettings
)

// markReadDoneMsg reports the result of a backend mark-read call.
type markReadDoneMsg struct {
	itemID int64
	unread int
	err    error
}

// markAllReadDoneMsg reports the result of a mark-all-read call.
type markAllReadDoneMsg struct {
	err error
}

// historyLoadedMsg carries archived items for a panel's history mode.
type historyLoadedMsg struct {
	feed  model.FeedKind
	items []model.Item
	err   error
}

// Model is the root Bubble Tea model.
type Model struct {
	cfg        *model.AppConfig
	configPath string
	layout     ui.Layout
	keys       *keys.KeyMap
	log        zerolog.Logger

	poller        *poll.Poller
	notifications *feed.NotificationFeed
	archive       store.Store

	view       ViewState
	notifPanel dropdown.Model
	msgPanel   dropdown.Model
	toasts     toast.Model
	settings   settings.Model
	focusIdx   int // 0 = notifications, 1 = messages

	lastSync map[model.FeedKind]time.Time
	syncErr  map[model.FeedKind]error
	ready    bool
}

// New creates the root model. archive may be nil when the history store
// could not be opened; history mode is then unavailable.
func New(
	cfg *model.AppConfig,
	configPath string,
	poller *poll.Poller,
	notifications *feed.NotificationFeed,
	archive store.Store,
	log zerolog.Logger,
) Model {
	km := keys.DefaultKeyMap()

	m := Model{
		cfg:           cfg,
		configPath:    configPath,
		keys:          km,
		log:           log,
		poller:        poller,
		notifications: notifications,
		archive:       archive,
		notifPanel:    dropdown.New(model.FeedNotifications, "Notifications", km, 40, 10),
		msgPanel:      dropdown.New(model.FeedMessages, "Messages", km, 40, 10),
		toasts:        toast.New(80),
		lastSync:      make(map[model.FeedKind]time.Time),
		syncErr:       make(map[model.FeedKind]error),
	}
	m.notifPanel.SetFocused(true)
	return m
}

// Init starts polling immediately and subscribes to poll results.
func (m Model) Init() tea.Cmd {
	m.poller.Start()
	return m.poller.WaitForNext()
}

// Update routes messages to the poller subscription, the panels, the
// toast stack, and the settings form.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The toast stack sees every message: popups arrive from the poller
	// goroutine via program.Send and expire on their own ticks.
	var toastCmd tea.Cmd
	m.toasts, toastCmd = m.toasts.Update(msg)
	if toastCmd != nil {
		cmds = append(cmds, toastCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.applySizes()
		m.ready = true

	case tea.FocusMsg:
		m.poller.Start()

	case tea.BlurMsg:
		m.poller.Stop()

	case poll.FeedUpdateMsg:
		m.lastSync[msg.Feed] = msg.At
		delete(m.syncErr, msg.Feed)
		if msg.Feed == model.FeedNotifications {
			m.notifPanel.SetItems(msg.Items, msg.UnreadCount)
		} else {
			m.msgPanel.SetItems(msg.Items, msg.UnreadCount)
		}
		cmds = append(cmds, m.poller.WaitForNext())

	case poll.FeedErrorMsg:
		// Stale-but-consistent: prior panel state stays untouched.
		m.syncErr[msg.Feed] = msg.Err
		cmds = append(cmds, m.poller.WaitForNext())

	case markReadDoneMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("mark read failed")
			break
		}
		m.notifPanel.MarkItemRead(msg.itemID)
		m.notifPanel.SetUnread(msg.unread)

	case markAllReadDoneMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("mark all read failed")
			break
		}
		m.poller.Refresh()

	case historyLoadedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("loading history failed")
			break
		}
		if msg.feed == model.FeedNotifications {
			m.notifPanel.SetHistory(msg.items)
		} else {
			m.msgPanel.SetHistory(msg.items)
		}

	case settings.DoneMsg:
		m.view = ViewTray
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("saving settings failed")
		} else if msg.Saved {
			cmds = append(cmds, func() tea.Msg {
				return toast.ShowMsg{
					ID:       "settings-saved",
					Text:     "Settings saved. Restart to apply.",
					Duration: 4 * time.Second,
				}
			})
		}

	case tea.KeyMsg:
		if m.view == ViewSettings {
			var cmd tea.Cmd
			m.settings, cmd = m.settings.Update(msg)
			cmds = append(cmds, cmd)
			break
		}
		if cmd, handled := m.handleTrayKey(msg); handled {
			cmds = append(cmds, cmd)
			break
		}
		var cmd tea.Cmd
		if m.focusIdx == 0 {
			m.notifPanel, cmd = m.notifPanel.Update(msg)
		} else {
			m.msgPanel, cmd = m.msgPanel.Update(msg)
		}
		cmds = append(cmds, cmd)

	default:
		if m.view == ViewSettings {
			var cmd tea.Cmd
			m.settings, cmd = m.settings.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleTrayKey handles global keys in the tray view. It reports whether
// the key was consumed.
func (m *Model) handleTrayKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.poller.Stop()
		return tea.Quit, true

	case key.Matches(msg, m.keys.Refresh):
		m.poller.Refresh()
		return nil, true

	case key.Matches(msg, m.keys.NextPanel):
		m.focusIdx = (m.focusIdx + 1) % 2
		m.notifPanel.SetFocused(m.focusIdx == 0)
		m.msgPanel.SetFocused(m.focusIdx == 1)
		return nil, true

	case key.Matches(msg, m.keys.History):
		if m.archive == nil {
			return nil, true
		}
		panel := m.focusedPanel()
		if panel.ToggleHistory() {
			return m.loadHistoryCmd(panel.Feed()), true
		}
		return nil, true

	case key.Matches(msg, m.keys.MarkRead):
		if m.focusIdx != 0 {
			return nil, true
		}
		if item, ok := m.notifPanel.Selected(); ok && item.Unread {
			return m.markReadCmd(item.ID), true
		}
		return nil, true

	case key.Matches(msg, m.keys.MarkAllRead):
		if m.focusIdx != 0 {
			return nil, true
		}
		return m.markAllReadCmd(), true

	case key.Matches(msg, m.keys.Settings):
		m.view = ViewSettings
		m.settings = settings.New(m.cfg, m.configPath, m.keys, m.layout.ContentWidth(), m.layout.ContentHeight())
		return m.settings.Init(), true
	}

	return nil, false
}

// View renders the full frame.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("feedtray", m.headerBadges())

	var content string
	if m.view == ViewSettings {
		content = m.settings.View()
	} else {
		content = lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.notifPanel.View(),
			m.msgPanel.View(),
		)
	}

	if m.toasts.Active() {
		content = lipgloss.JoinVertical(lipgloss.Left, m.toasts.View(), content)
	}

	return m.layout.RenderWithFrame(header, content, m.layout.RenderStatusBar(m.statusLine()))
}

// headerBadges renders the unread badges for both feeds. Hidden badges
// render as nothing at all.
func (m Model) headerBadges() string {
	var parts []string
	if badge := ui.BadgeText(m.notifPanel.Unread()); badge != "" {
		parts = append(parts, theme.BadgeStyle.Render("🔔 "+badge))
	}
	if badge := ui.BadgeText(m.msgPanel.Unread()); badge != "" {
		parts = append(parts, theme.BadgeStyle.Render("✉ "+badge))
	}
	return strings.Join(parts, " ")
}

// statusLine composes the status bar text: sync state plus key hints.
func (m Model) statusLine() string {
	status := "polling"
	if !m.poller.Running() {
		status = "paused"
	}
	for kind, err := range m.syncErr {
		if err != nil {
			status = fmt.Sprintf("%s stale (%s)", kind, status)
			break
		}
	}

	return fmt.Sprintf(
		"%s | tab: switch  r: refresh  a: history  m: mark read  s: settings  q: quit",
		status,
	)
}

// applySizes distributes the window size across the panels.
func (m *Model) applySizes() {
	half := m.layout.ContentWidth() / 2
	m.notifPanel.SetSize(half, m.layout.ContentHeight())
	m.msgPanel.SetSize(m.layout.ContentWidth()-half, m.layout.ContentHeight())
	m.toasts.SetWidth(m.layout.ContentWidth())
	m.settings.SetSize(m.layout.ContentWidth(), m.layout.ContentHeight())
}

// focusedPanel returns the panel holding keyboard focus.
func (m *Model) focusedPanel() *dropdown.Model {
	if m.focusIdx == 0 {
		return &m.notifPanel
	}
	return &m.msgPanel
}

// markReadCmd marks one notification read on the backend and mirrors the
// change into the archive.
func (m Model) markReadCmd(id int64) tea.Cmd {
	notifications := m.notifications
	archive := m.archive
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		unread, err := notifications.MarkRead(ctx, id)
		if err == nil && archive != nil {
			_ = archive.MarkRead(ctx, model.FeedNotifications, id)
		}
		return markReadDoneMsg{itemID: id, unread: unread, err: err}
	}
}

// markAllReadCmd marks every notification read on the backend and mirrors
// the change into the archive.
func (m Model) markAllReadCmd() tea.Cmd {
	notifications := m.notifications
	archive := m.archive
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := notifications.MarkAllRead(ctx)
		if err == nil && archive != nil {
			_ = archive.MarkAllRead(ctx, model.FeedNotifications)
		}
		return markAllReadDoneMsg{err: err}
	}
}

// loadHistoryCmd fetches archived items for a panel's history mode.
func (m Model) loadHistoryCmd(kind model.FeedKind) tea.Cmd {
	archive := m.archive
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		items, err := archive.History(ctx, store.HistoryFilter{
			Feed:  &kind,
			Limit: dropdown.HistoryLimit(),
		})
		return historyLoadedMsg{feed: kind, items: items, err: err}
	}
}
