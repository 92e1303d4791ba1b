// Package settings is the connection-settings form: backend URL, API
// token, and poll cadence. The token goes to the system keyring, the rest
// to the YAML config file.
package settings

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nvaldez/feedtray/internal/credential"
	"github.com/nvaldez/feedtray/internal/keys"
	"github.com/nvaldez/feedtray/internal/model"
)

// DoneMsg signals the settings view should close.
type DoneMsg struct {
	// Saved reports whether the form was submitted (vs. cancelled).
	Saved bool
	Err   error
}

// Model is the Bubble Tea model for the settings form.
type Model struct {
	cfg        *model.AppConfig
	configPath string
	keys       *keys.KeyMap
	form       *huh.Form

	formBaseURL  string
	formToken    string
	formInterval string

	width  int
	height int
}

// New creates the settings form pre-filled from the current config.
func New(cfg *model.AppConfig, configPath string, km *keys.KeyMap, width, height int) Model {
	m := Model{
		cfg:          cfg,
		configPath:   configPath,
		keys:         km,
		formBaseURL:  cfg.BaseURL,
		formInterval: strconv.Itoa(cfg.PollIntervalMS),
		width:        width,
		height:       height,
	}
	m.form = m.buildForm()
	return m
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update drives the form and saves on completion.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Back) {
		return m, func() tea.Msg { return DoneMsg{} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		err := m.save()
		return m, func() tea.Msg { return DoneMsg{Saved: err == nil, Err: err} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	return m.form.View()
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// save writes the config file and stores the token in the keyring. Values
// are read back through the form: the Model is copied on every Update, but
// all copies share the same *huh.Form.
func (m *Model) save() error {
	m.cfg.BaseURL = strings.TrimRight(m.form.GetString(fieldBaseURL), "/")
	if interval, err := strconv.Atoi(m.form.GetString(fieldInterval)); err == nil && interval > 0 {
		m.cfg.PollIntervalMS = interval
	}

	if err := model.SaveConfig(m.configPath, m.cfg); err != nil {
		return err
	}

	if token := m.form.GetString(fieldToken); token != "" {
		if err := credential.Set(credential.TokenKey, token); err != nil {
			return fmt.Errorf("storing API token: %w", err)
		}
	}
	return nil
}

// Form field keys.
const (
	fieldBaseURL  = "base_url"
	fieldToken    = "token"
	fieldInterval = "interval"
)

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key(fieldBaseURL).
				Title("Backend URL").
				Description("Root URL of the store backend (e.g., https://shop.example.com)").
				Placeholder("https://shop.example.com").
				Value(&m.formBaseURL).
				Validate(validateURL),
			huh.NewInput().
				Key(fieldToken).
				Title("API Token").
				Description("Stored in the system keyring; leave blank to keep the current one").
				EchoMode(huh.EchoModePassword).
				Value(&m.formToken),
			huh.NewInput().
				Key(fieldInterval).
				Title("Poll Interval (ms)").
				Description("How often both feeds are polled").
				Value(&m.formInterval).
				Validate(validateIntervalMS),
		),
	).WithWidth(min(m.width, 72))
}

func validateURL(value string) error {
	if value == "" {
		return fmt.Errorf("Backend URL is required")
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("enter a full URL including scheme")
	}
	return nil
}

func validateIntervalMS(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number of milliseconds")
	}
	return nil
}
