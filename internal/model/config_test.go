package model

import (
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.NotificationPath != "/api/notifications/" {
		t.Errorf("notification path = %q", cfg.NotificationPath)
	}
	if cfg.MessagePath != "/api/messages/" {
		t.Errorf("message path = %q", cfg.MessagePath)
	}
	if cfg.PollIntervalMS != 30000 {
		t.Errorf("poll interval = %d, want 30000", cfg.PollIntervalMS)
	}
	if cfg.Display.PreviewSize != 5 {
		t.Errorf("preview size = %d, want 5", cfg.Display.PreviewSize)
	}
	if cfg.BaseURL != "" {
		t.Errorf("base URL = %q, want empty", cfg.BaseURL)
	}
}

func TestSaveThenLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	want := &AppConfig{
		BaseURL:          "https://shop.example.com",
		NotificationPath: "/api/notifications/",
		MessagePath:      "/api/messages/",
		PollIntervalMS:   15000,
		Display:          DisplayConfig{PreviewSize: 8},
	}
	if err := SaveConfig(path, want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.BaseURL != want.BaseURL {
		t.Errorf("base URL = %q, want %q", got.BaseURL, want.BaseURL)
	}
	if got.PollIntervalMS != 15000 {
		t.Errorf("poll interval = %d, want 15000", got.PollIntervalMS)
	}
	if got.Display.PreviewSize != 8 {
		t.Errorf("preview size = %d, want 8", got.Display.PreviewSize)
	}
}

func TestLoadConfigClampsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	bad := &AppConfig{
		BaseURL:        "https://shop.example.com",
		PollIntervalMS: -1,
	}
	if err := SaveConfig(path, bad); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.PollIntervalMS != 30000 {
		t.Errorf("poll interval = %d, want default 30000", got.PollIntervalMS)
	}
	if got.Display.PreviewSize != 5 {
		t.Errorf("preview size = %d, want default 5", got.Display.PreviewSize)
	}
}
