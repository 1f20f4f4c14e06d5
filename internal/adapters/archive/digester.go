package archive

import (
	// Registers sha256 with go-digest.
	_ "crypto/sha256"
	"os"

	"github.com/opencontainers/go-digest"
	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Digester = (*Digester)(nil)

// Digester implements ports.Digester with OCI content digests.
type Digester struct{}

// NewDigester creates a new Digester.
func NewDigester() *Digester {
	return &Digester{}
}

// Digest returns the canonical (sha256) digest of the file.
func (d *Digester) Digest(path string) (string, error) {
	dg, err := fromFile(digest.Canonical, path)
	if err != nil {
		return "", err
	}
	return dg.String(), nil
}

// Verify checks the file against expected, which must be in "<alg>:<hex>" form.
func (d *Digester) Verify(path, expected string) error {
	want, err := digest.Parse(expected)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidDigest.Error()), "digest", expected)
	}

	got, err := fromFile(want.Algorithm(), path)
	if err != nil {
		return err
	}
	if got != want {
		mismatch := zerr.With(zerr.Wrap(domain.ErrChecksumMismatch, "digest of "+path+" does not match"), "expected", want.String())
		return zerr.With(mismatch, "actual", got.String())
	}
	return nil
}

func fromFile(alg digest.Algorithm, path string) (digest.Digest, error) {
	//nolint:gosec // path is the archive location chosen by the provisioner
	f, err := os.Open(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrArchiveOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	dg, err := alg.FromReader(f)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrHashFailed.Error()), "path", path)
	}
	return dg, nil
}
