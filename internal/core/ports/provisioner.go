package ports

import (
	"context"

	"go.trai.ch/fftwlink/internal/core/domain"
)

// Provisioner makes the native libraries of a platform available on disk.
//
// Implementations are responsible for:
//   - Locating or producing the artifacts of both libraries
//   - Skipping work whose result already exists
//   - Describing the result as a bundle the emitter can link against
//
//go:generate mockgen -source=provisioner.go -destination=mocks/mock_provisioner.go -package=mocks
type Provisioner interface {
	// Provision returns the bundle for the platform, producing artifacts as needed.
	Provision(ctx context.Context, cfg domain.Config, platform domain.Platform) (domain.Bundle, error)
}
