package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fftwlink/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Info("some message")

	g := goldie.New(t)
	g.Assert(t, "info_basic", buf.Bytes())
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("some warning")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "standard error",
			err:        errors.New("boom"),
			goldenName: "error_standard",
		},
		{
			name: "wrapped chain with metadata",
			err: zerr.With(
				zerr.Wrap(
					zerr.Wrap(errors.New("exit status 2"), "make -j4 failed"),
					"command failed",
				),
				"exit_code", 2,
			),
			goldenName: "error_chain",
		},
		{
			name:       "metadata on standard error",
			err:        zerr.With(errors.New("connection refused"), "url", "ftp://ftp.fftw.org"),
			goldenName: "error_folded_metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(zerr.Wrap(errors.New("disk full"), "write failed"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Contains(t, buf.String(), "disk full")
}

func TestLogger_SetOutputKeepsFormat(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetFormat(logger.FormatJSON)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Info("hello")

	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestLogger_PlainFormat(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	lg.SetFormat(logger.FormatPlain)

	lg.Warn("careful")
	assert.Equal(t, "! careful\n", buf.String())
}

func TestLogger_Debug(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Debug("emit done in 2ms")
	assert.Empty(t, buf.String(), "debug messages are hidden by default")

	lg.SetVerbose(true)
	lg.Debug("emit done in 2ms")
	assert.Equal(t, "○ emit done in 2ms\n", buf.String())

	// Verbosity survives a format switch.
	lg.SetFormat(logger.FormatJSON)
	buf.Reset()
	lg.Debug("plan done in 1ms")
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)

	lg.SetVerbose(false)
	buf.Reset()
	lg.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestPrettyHandler_Attrs(t *testing.T) {
	buf := &bytes.Buffer{}
	log := slog.New(logger.NewPlainHandler(buf, nil)).
		With("variant", "linux-x64").
		WithGroup("fetch").
		With("url", "ftp://ftp.fftw.org")

	log.Warn("retrying", "attempt", 2, slog.Group("tls", "enabled", false))

	assert.Equal(t,
		"! retrying variant=linux-x64 fetch.url=ftp://ftp.fftw.org fetch.attempt=2 fetch.tls.enabled=false\n",
		buf.String())
}

func TestCollectErrorEntries(t *testing.T) {
	inner := zerr.With(zerr.New("inner"), "inner_key", "inner_val")
	outer := zerr.With(zerr.Wrap(inner, "outer"), "outer_key", "outer_val")

	entries := logger.CollectErrorEntries(outer)
	require.Len(t, entries, 2)
	assert.Equal(t, "outer", logger.EntryMessage(entries[0]))
	assert.Equal(t, map[string]any{"outer_key": "outer_val"}, logger.EntryMetadata(entries[0]))
	assert.Equal(t, "inner", logger.EntryMessage(entries[1]))
	assert.Equal(t, map[string]any{"inner_key": "inner_val"}, logger.EntryMetadata(entries[1]))

	assert.Equal(t,
		"Error: outer\n       outer_key=outer_val\n\n  Caused by:\n    → inner\n      inner_key=inner_val",
		logger.FormatErrorEntries(entries),
	)
}
