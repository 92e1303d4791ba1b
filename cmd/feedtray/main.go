package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvaldez/feedtray/internal/app"
	"github.com/nvaldez/feedtray/internal/credential"
	"github.com/nvaldez/feedtray/internal/feed"
	"github.com/nvaldez/feedtray/internal/logging"
	"github.com/nvaldez/feedtray/internal/model"
	"github.com/nvaldez/feedtray/internal/poll"
	"github.com/nvaldez/feedtray/internal/store"
	"github.com/nvaldez/feedtray/internal/ui/toast"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "feedtray: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	logPath := flag.String("log", logging.DefaultLogPath(), "path to the diagnostic log")
	flag.Parse()

	log, logCloser, err := logging.Open(*logPath)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if cfg.BaseURL == "" {
		return fmt.Errorf("no backend configured: set base_url in %s", *configPath)
	}

	token := loadToken()
	if token == "" {
		log.Warn().Msg("no API token found; backend requests will be unauthenticated")
	}

	client := feed.NewClient(cfg.BaseURL, token)
	notifications := feed.NewNotificationFeed(client, cfg.NotificationPath)
	messages := feed.NewMessageFeed(client, cfg.MessagePath)

	// The history archive is best-effort: the tray works without it.
	var archive store.Store
	dbPath := defaultDBPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		log.Warn().Err(err).Msg("creating data directory failed")
	}
	if s, err := store.NewSQLiteStore(dbPath); err != nil {
		log.Warn().Err(err).Msg("history store unavailable")
	} else {
		archive = s
		defer s.Close()
	}

	poller := poll.New(
		[]feed.Feed{notifications, messages},
		time.Duration(cfg.PollIntervalMS)*time.Millisecond,
		cfg.Display.PreviewSize,
		archive,
		log,
	)

	m := app.New(cfg, *configPath, poller, notifications, archive, log)

	// Focus reporting maps terminal visibility onto the poller's
	// start/stop lifecycle.
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	poller.SetNotifier(toast.NewNotifier(program.Send))

	log.Info().Str("backend", cfg.BaseURL).Msg("feedtray starting")
	_, err = program.Run()
	poller.Stop()
	return err
}

// loadToken reads the API token from the environment, falling back to
// the system keyring.
func loadToken() string {
	if token := os.Getenv("FEEDTRAY_TOKEN"); token != "" {
		return token
	}
	token, err := credential.Get(credential.TokenKey)
	if err != nil {
		return ""
	}
	return token
}

// defaultDBPath returns the history archive location under the user data
// directory.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "feedtray.db")
	}
	return filepath.Join(home, ".local", "share", "feedtray", "feedtray.db")
}
