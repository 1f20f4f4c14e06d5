package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fftwlink/internal/adapters/detector"
	"go.trai.ch/fftwlink/internal/core/domain"
)

func TestDetectEnvironment_CI(t *testing.T) {
	for _, ci := range []string{"true", "1"} {
		t.Run("CI="+ci, func(t *testing.T) {
			t.Setenv("CI", ci)
			assert.Equal(t, detector.ModePlain, detector.DetectEnvironment())
		})
	}
}

func TestDetectEnvironment_NonTTY(t *testing.T) {
	// go test redirects stderr, so the terminal check fails.
	t.Setenv("CI", "")
	assert.Equal(t, detector.ModePlain, detector.DetectEnvironment())
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		flag     string
		auto     detector.OutputMode
		expected detector.OutputMode
	}{
		{flag: "", auto: detector.ModePretty, expected: detector.ModePretty},
		{flag: "auto", auto: detector.ModePlain, expected: detector.ModePlain},
		{flag: "pretty", auto: detector.ModePlain, expected: detector.ModePretty},
		{flag: "plain", auto: detector.ModePretty, expected: detector.ModePlain},
		{flag: "json", auto: detector.ModePretty, expected: detector.ModeJSON},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			mode, err := detector.ResolveMode(tt.auto, tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}
}

func TestResolveMode_Unknown(t *testing.T) {
	_, err := detector.ResolveMode(detector.ModePretty, "tui")
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}
