package fetch

import (
	"context"
	"io"
	"net"
	"net/url"
	"time"

	"github.com/jlaffaye/ftp"
	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/zerr"
)

const defaultFTPPort = "21"

// FTPFetcher retrieves files over FTP in passive binary mode.
type FTPFetcher struct {
	timeout time.Duration
}

// NewFTPFetcher creates an FTPFetcher.
func NewFTPFetcher(timeout time.Duration) *FTPFetcher {
	return &FTPFetcher{timeout: timeout}
}

// Fetch logs in with the remote credentials, anonymous when unset, and
// retrieves the URL path. Cancelling ctx aborts the transfer.
func (f *FTPFetcher) Fetch(ctx context.Context, remote domain.Remote, w io.Writer) error {
	u, err := url.Parse(remote.URL)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", remote.URL)
	}

	addr := u.Host
	if u.Port() == "" {
		addr = net.JoinHostPort(u.Hostname(), defaultFTPPort)
	}

	conn, err := ftp.Dial(addr,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(f.timeout),
		ftp.DialWithShutTimeout(f.timeout),
	)
	if err != nil {
		return fetchError(err, u)
	}
	defer conn.Quit() //nolint:errcheck // the transfer result is already decided

	user, password := credentials(remote, u)
	if err := conn.Login(user, password); err != nil {
		return zerr.With(fetchError(err, u), "user", user)
	}

	resp, err := conn.Retr(u.Path)
	if err != nil {
		return fetchError(err, u)
	}

	// Closing the data connection unblocks a pending read.
	stop := context.AfterFunc(ctx, func() { _ = resp.Close() })
	_, copyErr := io.Copy(w, resp)
	stop()

	if ctx.Err() != nil {
		return fetchError(ctx.Err(), u)
	}
	if copyErr != nil {
		_ = resp.Close()
		return fetchError(copyErr, u)
	}
	if err := resp.Close(); err != nil {
		return fetchError(err, u)
	}
	return nil
}

// credentials prefers explicit remote credentials, then URL userinfo, then anonymous.
func credentials(remote domain.Remote, u *url.URL) (string, string) {
	user, password := remote.Username, remote.Password
	if user == "" && u.User != nil {
		user = u.User.Username()
		password, _ = u.User.Password()
	}
	if user == "" {
		user, password = domain.AnonymousUser, domain.AnonymousUser
	}
	return user, password
}
