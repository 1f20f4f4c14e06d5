// Package provision implements the strategies that make the FFTW library
// pair available on disk.
package provision

import (
	"context"
	"path/filepath"

	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports"
)

var _ ports.Provisioner = (*Bundled)(nil)

// Bundled selects the precompiled artifacts shipped with the project. It
// performs no network or subprocess activity.
type Bundled struct{}

// NewBundled creates a new Bundled provisioner.
func NewBundled() *Bundled {
	return &Bundled{}
}

// Provision returns the bundle directory of the platform.
func (b *Bundled) Provision(_ context.Context, cfg domain.Config, platform domain.Platform) (domain.Bundle, error) {
	return domain.Bundle{
		Dir:        filepath.Join(cfg.PrecompiledDir, filepath.FromSlash(platform.Dir)),
		SearchPath: platform.SearchPath,
		Libraries:  linkedLibraries(platform.Link, ""),
	}, nil
}

// linkedLibraries returns the library pair with suffix appended to the link names.
func linkedLibraries(kind domain.LinkKind, suffix string) []domain.LinkedLibrary {
	libs := domain.Libraries()
	linked := make([]domain.LinkedLibrary, 0, len(libs))
	for _, lib := range libs {
		linked = append(linked, domain.LinkedLibrary{
			Library:  lib,
			LinkName: lib.Name + suffix,
			Link:     kind,
		})
	}
	return linked
}
