package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fftwlink/cmd/fftwlink/commands"
	"go.trai.ch/fftwlink/internal/app"
	"go.trai.ch/fftwlink/internal/build"
)

type mockApp struct {
	logFormat  string
	verbose    bool
	emitFunc   func(ctx context.Context, opts app.EmitOptions) error
	statusFunc func(o app.Overrides) error
	cleanFunc  func(opts app.CleanOptions) error
}

func (m *mockApp) SetLogFormat(flag string) error {
	m.logFormat = flag
	return nil
}

func (m *mockApp) SetVerbose(enable bool) {
	m.verbose = enable
}

func (m *mockApp) Emit(ctx context.Context, opts app.EmitOptions) error {
	if m.emitFunc != nil {
		return m.emitFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Status(o app.Overrides) error {
	if m.statusFunc != nil {
		return m.statusFunc(o)
	}
	return nil
}

func (m *mockApp) Clean(opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(opts)
	}
	return nil
}

func TestCommands_Emit(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.EmitOptions
		called := false

		mock := &mockApp{
			emitFunc: func(_ context.Context, opts app.EmitOptions) error {
				captured = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"--config", "ci.yaml", "--log-format", "json", "-v",
			"emit", "--format", "cgo", "-o", "fftw/zz_link.go",
			"--strategy", "source", "--target", "linux/arm64", "--force", "--watch",
		})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, app.EmitOptions{
			Overrides: app.Overrides{
				ConfigPath: "ci.yaml",
				Strategy:   "source",
				Target:     "linux/arm64",
				Format:     "cgo",
				Output:     "fftw/zz_link.go",
				Force:      true,
			},
			Watch: true,
		}, captured)
		assert.Equal(t, "json", mock.logFormat)
		assert.True(t, mock.verbose)
	})

	t.Run("defaults", func(t *testing.T) {
		var captured app.EmitOptions
		mock := &mockApp{
			emitFunc: func(_ context.Context, opts app.EmitOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"emit"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.EmitOptions{}, captured)
		assert.Equal(t, "auto", mock.logFormat)
		assert.False(t, mock.verbose)
	})

	t.Run("returns error on emit failure", func(t *testing.T) {
		mock := &mockApp{
			emitFunc: func(_ context.Context, _ app.EmitOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"emit"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		mock := &mockApp{
			emitFunc: func(_ context.Context, _ app.EmitOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"emit", "extra"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Status(t *testing.T) {
	var captured app.Overrides
	mock := &mockApp{
		statusFunc: func(o app.Overrides) error {
			captured = o
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"status", "-c", "other.yaml", "--target", "windows/amd64"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, app.Overrides{ConfigPath: "other.yaml", Target: "windows/amd64"}, captured)
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.CleanOptions
	}{
		{name: "default", args: []string{"clean"}, want: app.CleanOptions{Output: true}},
		{name: "state", args: []string{"clean", "--state"}, want: app.CleanOptions{State: true}},
		{name: "all", args: []string{"clean", "--all"}, want: app.CleanOptions{Output: true, State: true}},
		{name: "all wins", args: []string{"clean", "--state", "-a"}, want: app.CleanOptions{Output: true, State: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured app.CleanOptions
			mock := &mockApp{
				cleanFunc: func(opts app.CleanOptions) error {
					captured = opts
					return nil
				},
			}

			cli := commands.New(mock)
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, tt.want, captured)
		})
	}
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "fftwlink version "+build.Version)
}
