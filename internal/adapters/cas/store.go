// Package cas implements the provision record store.
package cas

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProvisionStore = (*Store)(nil)

// Store implements ports.ProvisionStore using a file-per-record strategy.
// Records live in <root>/store/<sha256(key)>.json.
type Store struct{}

// NewStore creates a new ProvisionStore.
func NewStore() (*Store, error) {
	return &Store{}, nil
}

// Get retrieves the record for a given key.
func (s *Store) Get(root, key string) (*domain.ProvisionRecord, error) {
	filename := s.getFilename(root, key)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "key", key)
	}

	var rec domain.ProvisionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "key", key)
	}

	return &rec, nil
}

// Put stores the record, replacing any previous record with the same key.
func (s *Store) Put(root string, rec domain.ProvisionRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.getFilename(root, rec.Key)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

// List returns every stored record ordered by key. A missing store is empty.
func (s *Store) List(root string) ([]domain.ProvisionRecord, error) {
	dir := domain.StorePath(root)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	records := make([]domain.ProvisionRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		//nolint:gosec // Path is constructed from trusted directory listing
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", path)
		}

		var rec domain.ProvisionRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", path)
		}
		records = append(records, rec)
	}

	slices.SortFunc(records, func(a, b domain.ProvisionRecord) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return records, nil
}

func (s *Store) getFilename(root, key string) string {
	hash := sha256.Sum256([]byte(key))
	hexHash := hex.EncodeToString(hash[:])
	return filepath.Join(domain.StorePath(root), hexHash+".json")
}
