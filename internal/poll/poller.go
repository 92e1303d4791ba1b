// Package poll implements the background poller that drives the two feeds.
//
// The poller is a two-state machine: idle (no ticker armed) and polling
// (ticker armed). Start and Stop are idempotent and the poller can be
// restarted any number of times; the host maps terminal focus and blur to
// Start and Stop. Each cycle fetches both feeds concurrently and handles
// their results independently: one feed failing never stops the ticker or
// touches the other feed's state.
package poll

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nvaldez/feedtray/internal/feed"
	"github.com/nvaldez/feedtray/internal/model"
	"github.com/nvaldez/feedtray/internal/store"
)

// DefaultInterval is the poll cadence used when none is configured.
const DefaultInterval = 30 * time.Second

// fetchTimeout is the maximum time allowed for a single feed fetch.
const fetchTimeout = 25 * time.Second

// popupDuration is how long a popup stays visible.
const popupDuration = 5 * time.Second

// Popup text limits: title+message for notifications, sender+body for
// messages.
const (
	notificationPopupLimit = 100
	messagePopupLimit      = 80
)

// Notifier is the popup sink invoked for items newer than a feed's
// baseline. A nil notifier is tolerated silently.
type Notifier interface {
	Info(text string, d time.Duration)
}

// FeedUpdateMsg is a tea.Msg sent after a successful feed fetch.
type FeedUpdateMsg struct {
	Feed        model.FeedKind
	UnreadCount int
	Items       []model.Item
	At          time.Time
}

// FeedErrorMsg is a tea.Msg sent when a feed fetch fails. The feed's
// displayed state stays whatever it was before.
type FeedErrorMsg struct {
	Feed model.FeedKind
	Err  error
}

// feedEntry holds a registered feed and its novelty baseline. A zero
// baseline means no successful poll has happened yet, which suppresses
// popups for that cycle.
type feedEntry struct {
	src      feed.Feed
	baseline time.Time
}

// Poller periodically fetches both feeds and publishes results for the UI.
type Poller struct {
	interval time.Duration
	preview  int
	feeds    []*feedEntry
	archive  store.Store
	resultCh chan tea.Msg
	log      zerolog.Logger

	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	notifier Notifier
}

// New creates a Poller over the given feeds. interval <= 0 falls back to
// DefaultInterval, preview <= 0 to 5 items. archive may be nil; when set,
// successfully fetched items are recorded in the history store.
func New(
	feeds []feed.Feed,
	interval time.Duration,
	preview int,
	archive store.Store,
	log zerolog.Logger,
) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if preview <= 0 {
		preview = 5
	}

	entries := make([]*feedEntry, 0, len(feeds))
	for _, f := range feeds {
		entries = append(entries, &feedEntry{src: f})
	}

	return &Poller{
		interval: interval,
		preview:  preview,
		feeds:    entries,
		archive:  archive,
		resultCh: make(chan tea.Msg, 16),
		log:      log,
	}
}

// SetNotifier installs the popup sink. May be called before Start.
func (p *Poller) SetNotifier(n Notifier) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifier = n
}

// Start arms the poll timer. It is idempotent: calling Start while polling
// is a no-op. On entry one poll cycle runs immediately, then the ticker
// fires at the configured interval.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stopCh = make(chan struct{})
	stop := p.stopCh
	p.mu.Unlock()

	p.log.Debug().Dur("interval", p.interval).Msg("poller started")
	go p.run(stop)
}

// Stop cancels the poll timer. It is idempotent. In-flight fetches are not
// cancelled, but their results are dropped when they complete after Stop.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	close(p.stopCh)
	p.running = false
	p.log.Debug().Msg("poller stopped")
}

// Running reports whether the poll timer is armed.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Refresh triggers an immediate poll cycle outside the timer cadence.
// No-op while idle.
func (p *Poller) Refresh() {
	p.mu.Lock()
	running := p.running
	stop := p.stopCh
	p.mu.Unlock()

	if running {
		p.cycle(stop)
	}
}

// run is the single timer loop. Exactly one run goroutine exists per
// polling period; stop is the channel closed by the matching Stop call.
func (p *Poller) run(stop <-chan struct{}) {
	p.cycle(stop)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.cycle(stop)
		}
	}
}

// cycle issues one fetch per feed. The fetches run concurrently and are
// awaited independently.
func (p *Poller) cycle(stop <-chan struct{}) {
	for _, entry := range p.feeds {
		go p.fetch(entry, stop)
	}
}

// fetch performs a single feed fetch and applies the result. Results that
// arrive after Stop are dropped so the UI is not updated once the host has
// logically navigated away.
func (p *Poller) fetch(entry *feedEntry, stop <-chan struct{}) {
	kind := entry.src.Kind()

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	snap, err := entry.src.Fetch(ctx)
	now := time.Now()

	p.mu.Lock()
	if !p.running || p.stopCh != stop {
		p.mu.Unlock()
		p.log.Debug().Str("feed", string(kind)).Msg("dropping late poll result")
		return
	}

	if err != nil {
		p.mu.Unlock()
		// Baseline stays untouched so a later success still detects
		// everything that arrived since the last good poll.
		p.log.Warn().Err(err).Str("feed", string(kind)).Msg("poll failed")
		p.send(FeedErrorMsg{Feed: kind, Err: err})
		return
	}

	baseline := entry.baseline
	entry.baseline = now
	notifier := p.notifier
	p.mu.Unlock()

	if !baseline.IsZero() && notifier != nil {
		for _, item := range snap.Items {
			if item.CreatedAt.After(baseline) {
				notifier.Info(PopupText(item), popupDuration)
			}
		}
	}

	if p.archive != nil {
		if err := p.archive.SaveItems(ctx, snap.Items); err != nil {
			p.log.Warn().Err(err).Str("feed", string(kind)).Msg("archiving items failed")
		}
	}

	items := snap.Items
	if len(items) > p.preview {
		items = items[:p.preview]
	}

	p.log.Debug().
		Str("feed", string(kind)).
		Int("unread", snap.UnreadCount).
		Int("items", len(items)).
		Msg("poll succeeded")

	p.send(FeedUpdateMsg{
		Feed:        kind,
		UnreadCount: snap.UnreadCount,
		Items:       items,
		At:          now,
	})
}

// send delivers a message to the UI without blocking. Dropping under a
// full channel is safe: the next cycle supersedes the lost update.
func (p *Poller) send(msg tea.Msg) {
	select {
	case p.resultCh <- msg:
	default:
	}
}

// WaitForNext returns a tea.Cmd that waits for the next poll result.
// Call it once from Init and again after processing each result to keep
// the subscription alive.
func (p *Poller) WaitForNext() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return msg
	}
}
