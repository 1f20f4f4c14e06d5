// Package shell provides the subprocess executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"sync"

	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Run executes the command and waits for it to finish.
// Stdout lines are logged at info level, stderr lines at warn level.
// Cancelling ctx kills the process.
func (e *Executor) Run(ctx context.Context, c domain.Command) error {
	e.logger.Info("Running: " + c.String())

	cmd := exec.CommandContext(ctx, c.Name, c.Args...) //nolint:gosec // build commands are assembled internally
	cmd.Dir = c.Dir
	cmd.Env = resolveEnvironment(os.Environ(), c.Env)

	stdout := &logWriter{emit: e.logger.Info}
	stderr := &logWriter{emit: e.logger.Warn}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	stdout.Flush()
	stderr.Flush()

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		wrapped := zerr.Wrap(err, domain.ErrCommandFailed.Error())
		wrapped = zerr.With(wrapped, "command", c.String())
		if c.Dir != "" {
			wrapped = zerr.With(wrapped, "dir", c.Dir)
		}
		return zerr.With(wrapped, "exit_code", exitCode)
	}

	return nil
}

// logWriter buffers process output and emits it one line at a time.
type logWriter struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	emit func(string)
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Incomplete line: keep it for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.emit(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

// Flush emits any trailing output not terminated by a newline.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.emit(strings.TrimRight(w.buf.String(), "\r\n"))
		w.buf.Reset()
	}
}

// resolveEnvironment layers the command's KEY=VALUE entries over the system environment.
func resolveEnvironment(sysEnv, cmdEnv []string) []string {
	if len(cmdEnv) == 0 {
		return sysEnv
	}

	overrides := make(map[string]bool, len(cmdEnv))
	for _, entry := range cmdEnv {
		if k, _, ok := strings.Cut(entry, "="); ok {
			overrides[k] = true
		}
	}

	result := make([]string, 0, len(sysEnv)+len(cmdEnv))
	for _, entry := range sysEnv {
		if k, _, ok := strings.Cut(entry, "="); ok && overrides[k] {
			continue
		}
		result = append(result, entry)
	}
	return append(result, cmdEnv...)
}
