// Package log provides category-tagged structured logging for sourceview.
//
// Logging is off until Init is called, so library packages can log
// unconditionally. Terminal UIs own stdout, so entries go to a file.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatEditor    Category = "editor"    // key handling, selection dispatch
	CatHighlight Category = "highlight" // lexer setup and tokenisation
	CatConfig    Category = "config"    // configuration loading
	CatCLI       Category = "cli"       // command line host
	CatWatch     Category = "watch"     // file reload
)

type logger struct {
	mu       sync.Mutex
	closer   io.Closer
	writer   io.Writer
	minLevel Level
}

var (
	mu  sync.RWMutex
	std *logger
)

// Init opens path for appending and routes all log calls to it.
// The returned function closes the file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // debug log path comes from the user
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	setLogger(&logger{closer: f, writer: f, minLevel: LevelDebug})
	return func() {
		setLogger(nil)
		_ = f.Close()
	}, nil
}

// InitWriter routes log calls to w. Passing nil disables logging.
func InitWriter(w io.Writer) {
	if w == nil {
		setLogger(nil)
		return
	}
	setLogger(&logger{writer: w, minLevel: LevelDebug})
}

func setLogger(l *logger) {
	mu.Lock()
	std = l
	mu.Unlock()
}

// Enabled reports whether a log destination is configured.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return std != nil
}

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	mu.RLock()
	l := std
	mu.RUnlock()
	if l == nil {
		return
	}
	l.mu.Lock()
	l.minLevel = level
	l.mu.Unlock()
}

func Debug(cat Category, msg string, fields ...any) { write(LevelDebug, cat, msg, fields...) }

func Info(cat Category, msg string, fields ...any) { write(LevelInfo, cat, msg, fields...) }

func Warn(cat Category, msg string, fields ...any) { write(LevelWarn, cat, msg, fields...) }

func Error(cat Category, msg string, fields ...any) { write(LevelError, cat, msg, fields...) }

// ErrorErr logs at error level with err attached as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	mu.RLock()
	l := std
	mu.RUnlock()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.minLevel {
		return
	}
	_, _ = io.WriteString(l.writer, format(time.Now(), level, cat, msg, fields))
}

// format renders one entry:
//
//	2026-01-02T15:04:05 [ERROR] [editor] message key=value key2=value2
func format(ts time.Time, level Level, cat Category, msg string, fields []any) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&sb, " %v=<missing>", fields[len(fields)-1])
	}
	sb.WriteByte('\n')
	return sb.String()
}
