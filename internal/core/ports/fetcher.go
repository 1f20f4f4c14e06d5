package ports

import (
	"context"
	"io"

	"go.trai.ch/fftwlink/internal/core/domain"
)

// Fetcher retrieves remote files.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch streams the remote file into w.
	Fetch(ctx context.Context, remote domain.Remote, w io.Writer) error
}
