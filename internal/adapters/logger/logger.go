// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/fftwlink/internal/core/ports"
)

// messager describes an error that can report its own message without the chain.
// This matches the Message() method provided by zerr.Error.
type messager interface {
	Message() string
}

// metadater describes an error carrying structured key/value metadata.
type metadater interface {
	Metadata() map[string]any
}

// Format selects the handler the logger writes with.
type Format int

const (
	// FormatPretty writes colored, human-readable lines.
	FormatPretty Format = iota
	// FormatPlain writes human-readable lines without color.
	FormatPlain
	// FormatJSON writes one JSON object per record.
	FormatJSON
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	mu     sync.RWMutex
	format Format
	output io.Writer
	level  *slog.LevelVar
}

// New creates a new Logger instance.
// Debug messages are dropped until SetVerbose(true).
func New() ports.Logger {
	level := &slog.LevelVar{}
	return &Logger{
		logger: slog.New(newHandler(os.Stderr, FormatPretty, level)),
		output: os.Stderr,
		level:  level,
	}
}

func newHandler(w io.Writer, f Format, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	switch f {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatPlain:
		return NewPlainHandler(w, opts)
	default:
		return NewPrettyHandler(w, opts)
	}
}

// SetOutput updates the logger's output destination.
// It preserves the current format. If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(newHandler(w, l.format, l.level))
}

// SetFormat switches the handler. The output destination is preserved.
func (l *Logger) SetFormat(f Format) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.format = f
	w := l.output
	if w == nil {
		w = os.Stderr
	}
	l.logger = slog.New(newHandler(w, f, l.level))
}

// SetVerbose enables or disables debug messages for every format.
func (l *Logger) SetVerbose(enable bool) {
	if enable {
		l.level.Set(slog.LevelDebug)
		return
	}
	l.level.Set(slog.LevelInfo)
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	if enable {
		l.SetFormat(FormatJSON)
		return
	}
	l.SetFormat(FormatPretty)
}

// Debug logs a message shown only in verbose mode.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error message with its cause chain.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	if l.format == FormatJSON {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

type errorEntry struct {
	message  string
	metadata map[string]any
}

// collectErrorEntries walks the error chain. zerr errors contribute their own
// message and metadata; the first standard error ends the walk with its full text.
// Entries without a message fold their metadata into the entry above them.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	pending := map[string]any{}

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, errorEntry{message: current.Error(), metadata: pending})
			break
		}

		md := map[string]any{}
		if withMeta, ok := current.(metadater); ok {
			md = withMeta.Metadata()
		}

		if m.Message() == "" {
			if len(entries) > 0 {
				maps.Copy(entries[len(entries)-1].metadata, md)
			} else {
				maps.Copy(pending, md)
			}
		} else {
			maps.Copy(md, pending)
			pending = map[string]any{}
			entries = append(entries, errorEntry{message: m.Message(), metadata: md})
		}
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders the entries hierarchically:
//
//	Error: <message>
//	       key=value
//
//	  Caused by:
//	    → <cause>
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.message, "\n")

		prefix, indent := "    → ", "      "
		if i == 0 {
			prefix, indent = "Error: ", "       "
		} else if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}

		lines = append(lines, prefix+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		if kv := formatMetadata(entry.metadata); kv != "" {
			lines = append(lines, indent+kv)
		}
	}

	return strings.Join(lines, "\n")
}

func formatMetadata(md map[string]any) string {
	if len(md) == 0 {
		return ""
	}
	parts := make([]string, 0, len(md))
	for _, k := range slices.Sorted(maps.Keys(md)) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, md[k]))
	}
	return strings.Join(parts, " ")
}
