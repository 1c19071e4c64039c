// Package applog provides general-purpose application logging.
//
// Logs are written to ~/.askdb/logs/app.log with timestamps.
// Covers: app start/stop, requests to the agent, raw agent replies and
// backend events. The TUI owns the terminal, so nothing is printed
// unless a mirror writer is installed (askdb serve mirrors to stderr).
package applog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/DachengChen/askdb/config"
)

var (
	once    sync.Once
	mu      sync.Mutex
	logFile *os.File
	mirror  io.Writer
)

func open() {
	once.Do(func() {
		dir, err := config.Dir()
		if err != nil {
			return
		}
		logDir := filepath.Join(dir, "logs")
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return
		}
		f, err := os.OpenFile(filepath.Join(logDir, "app.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return
		}
		logFile = f
	})
}

// Mirror copies every log line to w as well. Pass nil to stop.
func Mirror(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	mirror = w
}

func write(level, format string, args ...interface{}) {
	open()
	ts := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%s] %-12s %s\n", ts, level, fmt.Sprintf(format, args...))

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.WriteString(line) //nolint:errcheck
	}
	if mirror != nil {
		io.WriteString(mirror, line) //nolint:errcheck
	}
}

// Info logs a general info message.
func Info(format string, args ...interface{}) {
	write("INFO", format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	write("ERROR", format, args...)
}

// Event logs a structured event with a category.
func Event(category string, format string, args ...interface{}) {
	write(category, format, args...)
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
