package fetch_test

import (
	"bytes"
	"context"
	"net"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fftwlink/internal/adapters/fetch"
	"go.trai.ch/fftwlink/internal/core/domain"
)

// fakeFTP is a minimal passive-mode FTP server serving files from memory.
type fakeFTP struct {
	addr  string
	files map[string][]byte

	mu    sync.Mutex
	users []string
}

func startFakeFTP(t *testing.T, files map[string][]byte) *fakeFTP {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	srv := &fakeFTP{addr: ln.Addr().String(), files: files}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go srv.serve(conn)
		}
	}()
	return srv
}

func (s *fakeFTP) loggedInUsers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.users...)
}

func (s *fakeFTP) serve(conn net.Conn) {
	defer conn.Close() //nolint:errcheck // test server

	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 fake ftp ready")

	var data net.Listener
	defer func() {
		if data != nil {
			_ = data.Close()
		}
	}()

	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}

		cmd, arg, _ := strings.Cut(line, " ")
		switch strings.ToUpper(cmd) {
		case "USER":
			s.mu.Lock()
			s.users = append(s.users, arg)
			s.mu.Unlock()
			_ = tp.PrintfLine("331 password required")
		case "PASS":
			_ = tp.PrintfLine("230 logged in")
		case "TYPE":
			_ = tp.PrintfLine("200 type set")
		case "EPSV":
			data, err = net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				_ = tp.PrintfLine("425 cannot open data connection")
				continue
			}
			_ = tp.PrintfLine("229 Entering Extended Passive Mode (|||%d|)", data.Addr().(*net.TCPAddr).Port)
		case "RETR":
			dc, err := data.Accept()
			if err != nil {
				_ = tp.PrintfLine("425 cannot open data connection")
				continue
			}
			content, ok := s.files[arg]
			if !ok {
				_ = dc.Close()
				_ = tp.PrintfLine("550 file not found")
				continue
			}
			_ = tp.PrintfLine("150 opening binary mode data connection")
			_, _ = dc.Write(content)
			_ = dc.Close()
			_ = tp.PrintfLine("226 transfer complete")
		case "QUIT":
			_ = tp.PrintfLine("221 bye")
			return
		default:
			_ = tp.PrintfLine("502 command not implemented")
		}
	}
}

func TestFTPFetcher_Anonymous(t *testing.T) {
	payload := []byte("PK\x03\x04 fake archive")
	srv := startFakeFTP(t, map[string][]byte{"/pub/fftw/fftw-3.3.5-dll64.zip": payload})

	var buf bytes.Buffer
	err := fetch.NewFTPFetcher(5*time.Second).Fetch(context.Background(), domain.Remote{
		URL: "ftp://" + srv.addr + "/pub/fftw/fftw-3.3.5-dll64.zip",
	}, &buf)
	require.NoError(t, err)

	assert.Equal(t, payload, buf.Bytes())
	assert.Equal(t, []string{"anonymous"}, srv.loggedInUsers())
}

func TestFTPFetcher_Credentials(t *testing.T) {
	srv := startFakeFTP(t, map[string][]byte{"/mirror/fftw.zip": []byte("zip")})

	var buf bytes.Buffer
	err := fetch.NewFTPFetcher(5*time.Second).Fetch(context.Background(), domain.Remote{
		URL:      "ftp://" + srv.addr + "/mirror/fftw.zip",
		Username: "builder",
		Password: "secret",
	}, &buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"builder"}, srv.loggedInUsers())

	// URL userinfo is used when no explicit credentials are configured.
	err = fetch.NewFTPFetcher(5*time.Second).Fetch(context.Background(), domain.Remote{
		URL: "ftp://mirror:pw@" + srv.addr + "/mirror/fftw.zip",
	}, &buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"builder", "mirror"}, srv.loggedInUsers())
}

func TestFTPFetcher_MissingFile(t *testing.T) {
	srv := startFakeFTP(t, nil)

	err := fetch.NewFTPFetcher(5*time.Second).Fetch(context.Background(), domain.Remote{
		URL: "ftp://" + srv.addr + "/pub/missing.zip",
	}, &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrFetchFailed.Error())
}

func TestFTPFetcher_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	err = fetch.NewFTPFetcher(time.Second).Fetch(context.Background(), domain.Remote{
		URL: "ftp://" + addr + "/pub/fftw.zip",
	}, &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrFetchFailed.Error())
}
