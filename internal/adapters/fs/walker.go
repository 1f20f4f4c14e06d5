// Package fs provides file system adapters for walking, copying, hashing and verifying files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Entry is a file system entry found by the Walker.
type Entry struct {
	// Path is the entry path including the walk root.
	Path string
	// Rel is the path relative to the walk root.
	Rel string
	fs.DirEntry
}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Walk yields every entry below root in lexical order, skipping VCS metadata
// and entries matching one of the ignore patterns. The root itself is not yielded.
// Walk errors are yielded once and end the iteration.
func (w *Walker) Walk(root string, ignores []string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == root {
				return nil
			}

			if skip, action := w.shouldSkip(d, ignores); skip {
				return action
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}

			if !yield(Entry{Path: path, Rel: rel, DirEntry: d}, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield(Entry{}, err)
		}
	}
}

// WalkFiles yields the regular files below root, see Walk.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for entry, err := range w.Walk(root, ignores) {
			if err != nil {
				yield(entry, err)
				return
			}
			if !entry.Type().IsRegular() {
				continue
			}
			if !yield(entry, nil) {
				return
			}
		}
	}
}

// shouldSkip reports whether the entry is excluded and the WalkDir action to return.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) (bool, error) {
	name := d.Name()

	if d.IsDir() && (name == ".git" || name == ".jj") {
		return true, filepath.SkipDir
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}

	return false, nil
}
