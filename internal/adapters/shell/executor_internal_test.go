package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogWriter_SplitsLines(t *testing.T) {
	var lines []string
	w := &logWriter{emit: func(s string) { lines = append(lines, s) }}

	_, _ = w.Write([]byte("checking for gcc... "))
	_, _ = w.Write([]byte("gcc\nchecking whether"))
	_, _ = w.Write([]byte(" the C compiler works... yes\r\n"))
	_, _ = w.Write([]byte("tail"))
	w.Flush()

	assert.Equal(t, []string{
		"checking for gcc... gcc",
		"checking whether the C compiler works... yes",
		"tail",
	}, lines)
}

func TestResolveEnvironment(t *testing.T) {
	sys := []string{"PATH=/usr/bin", "CC=gcc", "HOME=/root"}

	assert.Equal(t, sys, resolveEnvironment(sys, nil))
	assert.Equal(t,
		[]string{"PATH=/usr/bin", "HOME=/root", "CC=clang", "CFLAGS=-O2"},
		resolveEnvironment(sys, []string{"CC=clang", "CFLAGS=-O2"}),
	)
}
