package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/fftwlink/internal/ui/output"
	"go.trai.ch/fftwlink/internal/ui/style"
)

// levelStyle is the icon and color a record level is printed with.
type levelStyle struct {
	icon  string
	color termenv.Color
}

// levelStyleFor picks the style of the highest band a level reaches.
func levelStyleFor(level slog.Level) levelStyle {
	switch {
	case level >= slog.LevelError:
		return levelStyle{icon: style.Cross, color: termenv.RGBColor(string(style.Red))}
	case level >= slog.LevelWarn:
		return levelStyle{icon: style.Warning, color: termenv.RGBColor(string(style.Yellow))}
	case level >= slog.LevelInfo:
		return levelStyle{color: termenv.RGBColor(string(style.Slate))}
	default:
		return levelStyle{icon: style.Circle, color: termenv.RGBColor(string(style.Slate))}
	}
}

// PrettyHandler is a slog.Handler writing one human-readable line per
// record: an optional level icon, the message, then key=value attributes.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	// prefix is prepended to attribute keys; it ends with "." when set.
	prefix string
	// attrs holds the pre-rendered attributes added through WithAttrs.
	attrs string
}

// NewPrettyHandler creates a handler that colors output when the terminal supports it.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	return newPrettyHandler(w, opts, output.ColorProfile)
}

// NewPlainHandler creates a handler that never emits color sequences.
func NewPlainHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	return newPrettyHandler(w, opts, output.ColorProfilePlain)
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, profile func() termenv.Profile) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &PrettyHandler{out: output.NewWithProfile(w, profile), level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	ls := levelStyleFor(r.Level)

	var sb strings.Builder
	if ls.icon != "" {
		sb.WriteString(ls.icon + " ")
	}
	sb.WriteString(r.Message)
	sb.WriteString(h.attrs)
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(&sb, h.prefix, attr)
		return true
	})

	_, err := h.out.WriteString(h.out.String(sb.String()).Foreground(ls.color).String() + "\n")
	return err
}

// WithAttrs returns a handler that prints attrs after every message.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var sb strings.Builder
	sb.WriteString(h.attrs)
	for _, attr := range attrs {
		writeAttr(&sb, h.prefix, attr)
	}
	clone := *h
	clone.attrs = sb.String()
	return &clone
}

// WithGroup returns a handler qualifying later attribute keys with name.
// Groups nest as name.inner.key.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

// writeAttr appends " key=value". Group attributes are flattened into dotted keys.
func writeAttr(sb *strings.Builder, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		inner := prefix
		if attr.Key != "" {
			inner += attr.Key + "."
		}
		for _, a := range attr.Value.Group() {
			writeAttr(sb, inner, a)
		}
		return
	}
	sb.WriteString(" " + prefix + attr.Key + "=" + attr.Value.String())
}
