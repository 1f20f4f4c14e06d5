package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/fftwlink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier provides functionality to verify the existence of files.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// MissingArtifacts returns the files that do not exist in dir, in input order.
// Directories do not count as artifacts.
func (v *Verifier) MissingArtifacts(dir string, files []string) ([]string, error) {
	var missing []string
	for _, file := range files {
		path := filepath.Join(dir, file)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, file)
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", path)
		}
		if info.IsDir() {
			missing = append(missing, file)
		}
	}
	return missing, nil
}
