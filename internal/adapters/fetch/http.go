package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/zerr"
)

// HTTPFetcher retrieves files over HTTP(S).
type HTTPFetcher struct {
	httpClient *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher whose requests time out after timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch issues a GET request and streams a 200 response body into w.
// Credentials other than the anonymous default are sent as basic auth.
func (f *HTTPFetcher) Fetch(ctx context.Context, remote domain.Remote, w io.Writer) error {
	u, err := url.Parse(remote.URL)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", remote.URL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return fetchError(err, u)
	}
	if remote.Username != "" && remote.Username != domain.AnonymousUser {
		req.SetBasicAuth(remote.Username, remote.Password)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fetchError(err, u)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		statusErr := zerr.With(zerr.Wrap(domain.ErrFetchFailed, "unexpected HTTP status"), "status_code", resp.StatusCode)
		return zerr.With(statusErr, "url", u.Redacted())
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fetchError(err, u)
	}
	return nil
}
