package provision

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Provisioner = (*Source)(nil)

// Source compiles the vendored FFTW source tree into static libraries, once
// per precision. Existing artifacts are reused.
//
// The existence check and the build are not atomic: two concurrent runs on
// the same output directory may both build.
type Source struct {
	executor ports.Executor
	copier   ports.TreeCopier
	hasher   ports.Hasher
	verifier ports.Verifier
	store    ports.ProvisionStore
	tracer   ports.Tracer
	logger   ports.Logger
	now      func() time.Time
}

// NewSource creates a new Source provisioner.
func NewSource(
	executor ports.Executor,
	copier ports.TreeCopier,
	hasher ports.Hasher,
	verifier ports.Verifier,
	store ports.ProvisionStore,
	tracer ports.Tracer,
	logger ports.Logger,
) *Source {
	return &Source{
		executor: executor,
		copier:   copier,
		hasher:   hasher,
		verifier: verifier,
		store:    store,
		tracer:   tracer,
		logger:   logger,
		now:      time.Now,
	}
}

// Provision copies the source tree into the scratch directory and builds each
// library whose archive is missing from <out>/lib.
func (s *Source) Provision(ctx context.Context, cfg domain.Config, platform domain.Platform) (domain.Bundle, error) {
	ctx, span := s.tracer.Start(ctx, "provision.source")
	defer span.End()
	span.SetAttribute("variant", platform.Variant.String())

	scratch := filepath.Join(cfg.OutDir, domain.ScratchSourceDirName)
	libDir := filepath.Join(cfg.OutDir, domain.LibDirName)

	if err := s.copySource(ctx, cfg.SourceDir, scratch); err != nil {
		span.RecordError(err)
		return domain.Bundle{}, err
	}

	var inputHash string
	for _, lib := range domain.Libraries() {
		artifact := domain.ArtifactFile(platform.Variant, lib.Name, domain.LinkStatic)

		missing, err := s.verifier.MissingArtifacts(libDir, []string{artifact})
		if err != nil {
			span.RecordError(err)
			return domain.Bundle{}, err
		}
		if len(missing) == 0 && !cfg.Force {
			s.logger.Info(artifact + " is up to date")
			continue
		}

		if err := s.build(ctx, cfg, scratch, lib); err != nil {
			span.RecordError(err)
			return domain.Bundle{}, err
		}

		if inputHash == "" {
			if inputHash, err = s.hasher.HashTree(cfg.SourceDir); err != nil {
				span.RecordError(err)
				return domain.Bundle{}, err
			}
		}
		if err := s.store.Put(cfg.StateDir, domain.ProvisionRecord{
			Key:       domain.RecordKey(domain.StrategySource, lib.Name),
			Strategy:  domain.StrategySource,
			Library:   lib.Name,
			Artifact:  filepath.Join(libDir, artifact),
			InputHash: inputHash,
			Timestamp: s.now(),
		}); err != nil {
			span.RecordError(err)
			return domain.Bundle{}, err
		}
	}

	return domain.Bundle{
		Dir:        libDir,
		SearchPath: true,
		Libraries:  linkedLibraries(domain.LinkStatic, ""),
	}, nil
}

func (s *Source) copySource(ctx context.Context, src, dst string) error {
	_, span := s.tracer.Start(ctx, "provision.source.copy")
	defer span.End()

	if err := s.copier.CopyTree(src, dst); err != nil {
		span.RecordError(err)
		return zerr.With(zerr.Wrap(err, domain.ErrProvisionFailed.Error()), "source_dir", src)
	}
	return nil
}

// build runs configure, make and make install for one precision inside the
// scratch tree, installing into the output directory.
func (s *Source) build(ctx context.Context, cfg domain.Config, scratch string, lib domain.Library) error {
	configureArgs := append([]string{}, cfg.Source.ConfigureFlags...)
	configureArgs = append(configureArgs, "--prefix="+cfg.OutDir)
	if lib.Precision == domain.PrecisionSingle && cfg.Source.SingleFlag != "" {
		configureArgs = append(configureArgs, cfg.Source.SingleFlag)
	}

	steps := []struct {
		span string
		cmd  domain.Command
	}{
		{"provision.source.configure", domain.Command{Name: filepath.Join(scratch, "configure"), Args: configureArgs, Dir: scratch}},
		{"provision.source.make", domain.Command{Name: "make", Args: []string{"-j" + strconv.Itoa(cfg.Jobs)}, Dir: scratch}},
		{"provision.source.install", domain.Command{Name: "make", Args: []string{"install"}, Dir: scratch}},
	}

	for _, step := range steps {
		stepCtx, span := s.tracer.Start(ctx, step.span)
		span.SetAttribute("library", lib.Name)
		err := s.executor.Run(stepCtx, step.cmd)
		if err != nil {
			span.RecordError(err)
		}
		span.End()
		if err != nil {
			return zerr.With(err, "library", lib.Name)
		}
	}
	return nil
}
