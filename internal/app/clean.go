package app

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/zerr"
)

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigPath string
	// Output removes downloaded archives, build scratch space and built libraries.
	Output bool
	// State removes the provision records.
	State bool
}

// Clean removes the output directory and/or the provision records.
func (a *App) Clean(options CleanOptions) error {
	cfg, err := a.LoadConfig(Overrides{ConfigPath: options.ConfigPath})
	if err != nil {
		return err
	}

	var errs error
	remove := func(path, name string) {
		if !safeToRemove(cfg, path) {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "refusing to remove "+name), "path", path))
			return
		}
		a.logger.Info("removing " + name + "...")
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove "+name), "path", path))
			return
		}
		a.logger.Info("removed " + name)
	}

	if options.Output {
		remove(cfg.OutDir, "output directory")
	}
	if options.State {
		remove(domain.StorePath(cfg.StateDir), "provision records")
	}
	return errs
}

// safeToRemove rejects paths that would take project content with them.
func safeToRemove(cfg domain.Config, path string) bool {
	clean := filepath.Clean(path)
	if clean == filepath.Dir(clean) {
		return false
	}
	for _, protected := range []string{cfg.ManifestDir, cfg.PrecompiledDir, cfg.SourceDir} {
		if protected == "" {
			continue
		}
		if rel, err := filepath.Rel(clean, filepath.Clean(protected)); err == nil && rel != ".." && !startsWithParent(rel) {
			return false
		}
	}
	return true
}

// startsWithParent reports whether a relative path leaves its base directory.
func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
