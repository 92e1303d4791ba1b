// Package logging configures the diagnostic log. The UI owns the
// terminal, so diagnostics go to a file under the user state directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// DefaultLogPath returns ~/.local/state/feedtray/feedtray.log, falling
// back to the working directory when the home directory is unknown.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "feedtray.log")
	}
	return filepath.Join(home, ".local", "state", "feedtray", "feedtray.log")
}

// Open creates the log file (and its directory) and returns a logger
// writing to it plus the closer for shutdown. FEEDTRAY_DEBUG=1 lowers
// the level to debug.
func Open(path string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	level := zerolog.InfoLevel
	if os.Getenv("FEEDTRAY_DEBUG") == "1" {
		level = zerolog.DebugLevel
	}

	log := zerolog.New(file).Level(level).With().Timestamp().Logger()
	return log, file, nil
}
