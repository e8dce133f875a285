package logging

// Leveled diagnostic logging. The TUI owns the terminal, so the
// interactive path writes to a file opened through tea.LogToFile.

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelSilent LogLevel = iota
	LogLevelError
	LogLevelInfo
	LogLevelDebug
)

// ParseLevel maps a settings value to a level; unknown values mean info
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent", "off", "none":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "debug", "verbose":
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}

// Logger writes leveled lines to a single destination
type Logger struct {
	mu     sync.Mutex
	level  LogLevel
	out    *log.Logger
	closer io.Closer
}

// New creates a logger writing to w
func New(level LogLevel, w io.Writer) *Logger {
	return &Logger{
		level: level,
		out:   log.New(w, "", log.LstdFlags),
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New(LogLevelSilent, io.Discard)
}

// NewFile opens path through Bubble Tea's file logger. An empty path
// yields a discarding logger.
func NewFile(level LogLevel, path string) (*Logger, error) {
	if path == "" {
		return Discard(), nil
	}
	f, err := tea.LogToFile(path, "configviewer")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := New(level, f)
	l.closer = f
	return l, nil
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.write(LogLevelError, "ERROR: ", format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.write(LogLevelInfo, "INFO: ", format, v...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.write(LogLevelDebug, "DEBUG: ", format, v...)
}

func (l *Logger) write(level LogLevel, prefix, format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.level < level {
		return
	}
	l.out.Println(prefix + fmt.Sprintf(format, v...))
}
