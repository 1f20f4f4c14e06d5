package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TreeCopier = (*Copier)(nil)

// Copier copies directory trees content-only, preserving file modes.
type Copier struct {
	walker *Walker
}

// NewCopier creates a new Copier.
func NewCopier(walker *Walker) *Copier {
	return &Copier{walker: walker}
}

// CopyTree copies the content of src into dst. Existing files are overwritten,
// files only present in dst are left alone.
func (c *Copier) CopyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", src)
	}
	if !info.IsDir() {
		return zerr.With(zerr.Wrap(domain.ErrCopyFailed, "source is not a directory"), "path", src)
	}

	if err := os.MkdirAll(dst, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", dst)
	}

	for entry, err := range c.walker.Walk(src, nil) {
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", src)
		}

		target := filepath.Join(dst, entry.Rel)
		if err := c.copyEntry(entry, target); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", entry.Path)
		}
	}

	return nil
}

func (c *Copier) copyEntry(entry Entry, target string) error {
	info, err := entry.Info()
	if err != nil {
		return err
	}

	switch {
	case entry.IsDir():
		if err := os.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
			return err
		}
		return os.Chmod(target, info.Mode().Perm()|0o700)
	case info.Mode()&os.ModeSymlink != 0:
		link, err := os.Readlink(entry.Path)
		if err != nil {
			return err
		}
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			return err
		}
		return os.Symlink(link, target)
	case info.Mode().IsRegular():
		return copyFile(entry.Path, target, info.Mode().Perm())
	default:
		return nil
	}
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src) //nolint:gosec // path comes from the walked source tree
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // read-only handle

	// Replace instead of truncating: an earlier copy may be read-only.
	if err := os.Remove(dst); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, perm) //nolint:gosec // path is below the destination root
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// The umask may have stripped bits from perm.
	return os.Chmod(dst, perm)
}
