package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fftwlink/internal/adapters/fs"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/config":       "git config",
		"ignored/file":      "ignored content",
		"api/fftw3.h":       "header",
		"kernel/planner.c":  "source",
		"README":            "readme",
		"config.log.backup": "junk",
	})

	var got []string
	for entry, err := range fs.NewWalker().WalkFiles(root, []string{"ignored", "*.backup"}) {
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(entry.Rel))
	}

	assert.Equal(t, []string{"README", "api/fftw3.h", "kernel/planner.c"}, got)
}

func TestWalker_Walk_IncludesDirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"api/fftw3.h": "header"})

	var got []string
	for entry, err := range fs.NewWalker().Walk(root, nil) {
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(entry.Rel))
	}

	assert.Equal(t, []string{"api", "api/fftw3.h"}, got)
}

func TestWalker_Walk_MissingRoot(t *testing.T) {
	var errs int
	for _, err := range fs.NewWalker().Walk(filepath.Join(t.TempDir(), "missing"), nil) {
		if err != nil {
			errs++
		}
	}
	assert.Equal(t, 1, errs)
}

func TestWalker_Walk_EarlyBreak(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a": "1", "b": "2", "c": "3"})

	count := 0
	for range fs.NewWalker().WalkFiles(root, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}
