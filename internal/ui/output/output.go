// Package output builds termenv outputs for the log handlers.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorProfile detects the terminal's capabilities. NO_COLOR forces Ascii.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ColorProfilePlain always returns Ascii. Used for CI logs and piped output.
func ColorProfilePlain() termenv.Profile {
	return termenv.Ascii
}

// NewWithProfile returns an output on w colored per profileFn. A nil writer
// means stderr, where all log lines go.
func NewWithProfile(w io.Writer, profileFn func() termenv.Profile) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(profileFn()), termenv.WithTTY(true))
}
