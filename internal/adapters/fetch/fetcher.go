// Package fetch implements the Fetcher port for ftp, http(s) and file URLs.
package fetch

import (
	"context"
	"io"
	"net/url"
	"time"

	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultTimeout bounds connection setup and idle transfers.
const DefaultTimeout = 30 * time.Second

var _ ports.Fetcher = (*Mux)(nil)

// Mux dispatches a fetch to the fetcher registered for the URL scheme.
type Mux struct {
	fetchers map[string]ports.Fetcher
}

// NewMux creates a Mux with the ftp, http, https and file fetchers.
func NewMux(timeout time.Duration) *Mux {
	httpFetcher := NewHTTPFetcher(timeout)
	return &Mux{
		fetchers: map[string]ports.Fetcher{
			"ftp":   NewFTPFetcher(timeout),
			"http":  httpFetcher,
			"https": httpFetcher,
			"file":  NewFileFetcher(),
		},
	}
}

// Handle registers f for the scheme, replacing any previous fetcher.
func (m *Mux) Handle(scheme string, f ports.Fetcher) {
	m.fetchers[scheme] = f
}

// Fetch streams the remote file into w.
func (m *Mux) Fetch(ctx context.Context, remote domain.Remote, w io.Writer) error {
	u, err := url.Parse(remote.URL)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", remote.URL)
	}

	f, ok := m.fetchers[u.Scheme]
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedScheme, "cannot fetch "+u.Redacted()), "scheme", u.Scheme)
	}
	return f.Fetch(ctx, remote, w)
}

// fetchError wraps a transfer failure. Credentials are stripped from the URL.
func fetchError(err error, u *url.URL) error {
	return zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", u.Redacted())
}
