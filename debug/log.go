package debug

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	file    *os.File
	mu      sync.Mutex
	enabled bool
	logger  = newLogger(io.Discard)
)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	return l
}

// DefaultPath is ~/.config/go-ledfield/debug.log
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "go-ledfield", "debug.log")
}

// Enable starts debug logging to DefaultPath. The terminal belongs to the
// TUI, so logs only ever go to a file.
func Enable() error {
	return EnableFile(DefaultPath())
}

// EnableFile starts debug logging to path, truncating it.
func EnableFile(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	// Ensure directory exists
	os.MkdirAll(filepath.Dir(path), 0755)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	enabled = true
	logger.SetOutput(f)
	logger.WithField("category", "debug").Info("=== Debug logging started ===")

	return nil
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	logger.SetOutput(io.Discard)
	if file != nil {
		file.Close()
		file = nil
	}
	enabled = false
}

// Enabled reports whether logs are being written
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Log writes a message to the debug log
func Log(category, format string, args ...any) {
	mu.Lock()
	on := enabled
	mu.Unlock()

	if !on {
		return
	}
	logger.WithField("category", category).Debugf(format, args...)
}

// Error logs at error level; used for failures worth finding in the log.
func Error(category string, err error) {
	mu.Lock()
	on := enabled
	mu.Unlock()

	if !on || err == nil {
		return
	}
	logger.WithField("category", category).WithError(err).Error("failure")
}

// LogEvery logs only every N calls (use for high-frequency events)
var counters = make(map[string]int)

func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
