// Package detector provides environment detection for log format selection.
package detector

import (
	"os"

	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents the log rendering mode for the application.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModePretty writes colored logs for an interactive terminal.
	ModePretty
	// ModePlain writes uncolored logs for CI systems and redirected output.
	ModePlain
	// ModeJSON writes structured JSON logs.
	ModeJSON
)

// DetectEnvironment returns the recommended output mode based on the environment.
// It checks if stderr is a TTY and if CI environment variables are set.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModePretty
}

// ResolveMode applies the user's --log-format flag to auto-detection.
// userFlag should be one of: "auto", "pretty", "plain", "json", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) (OutputMode, error) {
	switch userFlag {
	case "pretty":
		return ModePretty, nil
	case "plain":
		return ModePlain, nil
	case "json":
		return ModeJSON, nil
	case "auto", "":
		return autoDetected, nil
	default:
		return ModeAuto, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "unknown log format"), "log_format", userFlag)
	}
}
