package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher provides content hashing of files and directory trees.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// HashTree computes a single hash over the relative paths and contents of all
// regular files below root. The result does not depend on where root lives.
func (h *Hasher) HashTree(root string) (string, error) {
	hasher := xxhash.New()

	for entry, err := range h.walker.WalkFiles(root, nil) {
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrHashFailed.Error()), "path", root)
		}
		if err := h.hashFile(entry, hasher); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func (h *Hasher) hashFile(entry Entry, mainHasher io.Writer) error {
	_, _ = mainHasher.Write([]byte(filepath.ToSlash(entry.Rel)))
	_, _ = mainHasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(entry.Path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrHashFailed.Error())
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
