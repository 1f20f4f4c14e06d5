package provision

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Provisioner = (*Download)(nil)

// Download provisions the prebuilt Windows DLLs: it fetches the archive once,
// verifies its digest, extracts the DLL and .def of each library and runs the
// archiver to produce import libraries.
//
// The cache checks are read-check-then-act without locking.
type Download struct {
	fetcher   ports.Fetcher
	extractor ports.Extractor
	digester  ports.Digester
	executor  ports.Executor
	verifier  ports.Verifier
	store     ports.ProvisionStore
	tracer    ports.Tracer
	logger    ports.Logger
	now       func() time.Time
}

// NewDownload creates a new Download provisioner.
func NewDownload(
	fetcher ports.Fetcher,
	extractor ports.Extractor,
	digester ports.Digester,
	executor ports.Executor,
	verifier ports.Verifier,
	store ports.ProvisionStore,
	tracer ports.Tracer,
	logger ports.Logger,
) *Download {
	return &Download{
		fetcher:   fetcher,
		extractor: extractor,
		digester:  digester,
		executor:  executor,
		verifier:  verifier,
		store:     store,
		tracer:    tracer,
		logger:    logger,
		now:       time.Now,
	}
}

// Provision returns the output directory as a dynamic-link bundle. It returns
// without touching the network when both DLLs are already present.
func (d *Download) Provision(ctx context.Context, cfg domain.Config, _ domain.Platform) (domain.Bundle, error) {
	ctx, span := d.tracer.Start(ctx, "provision.download")
	defer span.End()

	suffix := cfg.Download.ABISuffix
	bundle := domain.Bundle{
		Dir:        cfg.OutDir,
		SearchPath: true,
		Libraries:  linkedLibraries(domain.LinkDynamic, suffix),
	}

	dlls := make([]string, 0, len(bundle.Libraries))
	for _, lib := range bundle.Libraries {
		dlls = append(dlls, "lib"+lib.LinkName+".dll")
	}
	missing, err := d.verifier.MissingArtifacts(cfg.OutDir, dlls)
	if err != nil {
		span.RecordError(err)
		return domain.Bundle{}, err
	}
	if len(missing) == 0 && !cfg.Force {
		d.logger.Info("prebuilt DLLs are up to date")
		return bundle, nil
	}

	archivePath := filepath.Join(cfg.OutDir, cfg.Download.Archive)
	if err := d.ensureArchive(ctx, cfg, archivePath); err != nil {
		span.RecordError(err)
		return domain.Bundle{}, err
	}
	if err := d.verifyArchive(ctx, cfg, archivePath); err != nil {
		span.RecordError(err)
		// A rejected archive must not satisfy the cache check of the next run.
		if rmErr := os.Remove(archivePath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			d.logger.Warn("failed to remove rejected archive " + archivePath + ": " + rmErr.Error())
		}
		return domain.Bundle{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, lib := range bundle.Libraries {
		g.Go(func() error {
			return d.importLibrary(gctx, cfg, archivePath, lib)
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return domain.Bundle{}, err
	}

	return bundle, nil
}

// ensureArchive fetches the archive unless it is cached. The download goes to
// a temporary file that is renamed into place once complete.
func (d *Download) ensureArchive(ctx context.Context, cfg domain.Config, archivePath string) error {
	if _, err := os.Stat(archivePath); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "path", archivePath)
	}

	ctx, span := d.tracer.Start(ctx, "provision.download.fetch")
	defer span.End()
	span.SetAttribute("url", cfg.Download.URL)

	if err := os.MkdirAll(cfg.OutDir, domain.DirPerm); err != nil {
		span.RecordError(err)
		return zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "path", cfg.OutDir)
	}

	tmp, err := os.CreateTemp(cfg.OutDir, "."+cfg.Download.Archive+".*")
	if err != nil {
		span.RecordError(err)
		return zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "path", cfg.OutDir)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	d.logger.Info("Downloading " + cfg.Download.URL)
	fetchErr := d.fetcher.Fetch(ctx, domain.Remote{
		URL:      cfg.Download.URL,
		Username: cfg.Download.Username,
		Password: cfg.Download.Password,
	}, tmp)
	closeErr := tmp.Close()
	if err := errors.Join(fetchErr, closeErr); err != nil {
		span.RecordError(err)
		return err
	}

	if err := os.Rename(tmpName, archivePath); err != nil {
		span.RecordError(err)
		return zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "path", archivePath)
	}
	return nil
}

// verifyArchive checks the archive against the configured digest, then
// against the digest recorded by an earlier run. Without either, the current
// digest is recorded and trusted.
func (d *Download) verifyArchive(ctx context.Context, cfg domain.Config, archivePath string) error {
	_, span := d.tracer.Start(ctx, "provision.download.verify")
	defer span.End()

	if cfg.Download.Digest != "" {
		err := d.digester.Verify(archivePath, cfg.Download.Digest)
		span.RecordError(err)
		return err
	}

	key := domain.RecordKey(domain.StrategyDownload, cfg.Download.Archive)
	rec, err := d.store.Get(cfg.StateDir, key)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if rec != nil && rec.Digest != "" {
		err := d.digester.Verify(archivePath, rec.Digest)
		span.RecordError(err)
		return err
	}

	dg, err := d.digester.Digest(archivePath)
	if err != nil {
		span.RecordError(err)
		return err
	}
	d.logger.Warn("no digest configured for " + cfg.Download.Archive + ", trusting " + dg)

	err = d.store.Put(cfg.StateDir, domain.ProvisionRecord{
		Key:       key,
		Strategy:  domain.StrategyDownload,
		Artifact:  archivePath,
		Digest:    dg,
		Timestamp: d.now(),
	})
	span.RecordError(err)
	return err
}

// importLibrary extracts the DLL and .def of one library and generates its
// import library with the archiver tool.
func (d *Download) importLibrary(ctx context.Context, cfg domain.Config, archivePath string, lib domain.LinkedLibrary) error {
	ctx, span := d.tracer.Start(ctx, "provision.download.extract")
	defer span.End()
	span.SetAttribute("library", lib.Library.Name)

	base := "lib" + lib.LinkName
	if err := d.extractor.Extract(archivePath, []string{base + ".dll", base + ".def"}, cfg.OutDir); err != nil {
		span.RecordError(err)
		return err
	}

	err := d.executor.Run(ctx, domain.Command{
		Name: cfg.Archiver.Command,
		Args: []string{
			"/MACHINE:" + cfg.Archiver.Machine,
			"/DEF:" + base + ".def",
			"/OUT:" + base + ".lib",
		},
		Dir: cfg.OutDir,
	})
	if err != nil {
		span.RecordError(err)
		return zerr.With(err, "library", lib.Library.Name)
	}
	return nil
}
