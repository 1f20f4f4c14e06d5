package fetch

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/zerr"
)

// FileFetcher copies files addressed by file:// URLs, e.g. an offline mirror.
type FileFetcher struct{}

// NewFileFetcher creates a FileFetcher.
func NewFileFetcher() *FileFetcher {
	return &FileFetcher{}
}

// Fetch copies the local file into w.
func (f *FileFetcher) Fetch(ctx context.Context, remote domain.Remote, w io.Writer) error {
	u, err := url.Parse(remote.URL)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", remote.URL)
	}
	if err := ctx.Err(); err != nil {
		return fetchError(err, u)
	}

	in, err := os.Open(filepath.FromSlash(u.Path))
	if err != nil {
		return fetchError(err, u)
	}
	defer in.Close() //nolint:errcheck // read-only handle

	if _, err := io.Copy(w, in); err != nil {
		return fetchError(err, u)
	}
	return nil
}
