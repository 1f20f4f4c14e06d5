// Package app implements the application layer for fftwlink.
package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/fftwlink/internal/adapters/detector"
	"go.trai.ch/fftwlink/internal/adapters/logger"
	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports"
	"go.trai.ch/fftwlink/internal/engine/linkplan"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	provisioner  ports.Provisioner
	emitter      *linkplan.Emitter
	renderer     ports.Renderer
	store        ports.ProvisionStore
	verifier     ports.Verifier
	watcher      ports.Watcher
	tracer       ports.Tracer
	logger       ports.Logger
	stdout       io.Writer
	getwd        func() (string, error)
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	provisioner ports.Provisioner,
	emitter *linkplan.Emitter,
	renderer ports.Renderer,
	store ports.ProvisionStore,
	verifier ports.Verifier,
	watcher ports.Watcher,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		provisioner:  provisioner,
		emitter:      emitter,
		renderer:     renderer,
		store:        store,
		verifier:     verifier,
		watcher:      watcher,
		tracer:       tracer,
		logger:       log,
		stdout:       os.Stdout,
		getwd:        os.Getwd,
	}
}

// WithStdout redirects rendered output and reports. Used for testing.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithWorkDir pins the directory used when no manifest directory is configured.
func (a *App) WithWorkDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// SetLogFormat applies the --log-format flag on top of terminal detection.
func (a *App) SetLogFormat(flag string) error {
	mode, err := detector.ResolveMode(detector.DetectEnvironment(), flag)
	if err != nil {
		return err
	}

	l, ok := a.logger.(*logger.Logger)
	if !ok {
		return nil
	}
	switch mode {
	case detector.ModeJSON:
		l.SetFormat(logger.FormatJSON)
	case detector.ModePlain:
		l.SetFormat(logger.FormatPlain)
	default:
		l.SetFormat(logger.FormatPretty)
	}
	return nil
}

// SetVerbose shows debug messages, such as step timings, when enabled.
func (a *App) SetVerbose(enable bool) {
	if l, ok := a.logger.(*logger.Logger); ok {
		l.SetVerbose(enable)
	}
}

// Overrides are command line values applied on top of the loaded configuration.
type Overrides struct {
	ConfigPath string
	Strategy   string
	Target     string
	Format     string
	Output     string
	Force      bool
}

// LoadConfig loads the configuration and applies the overrides.
func (a *App) LoadConfig(o Overrides) (domain.Config, error) {
	cwd, err := a.getwd()
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	cfg, err := a.configLoader.Load(cwd, o.ConfigPath)
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to load configuration")
	}

	if o.Strategy != "" {
		cfg.Strategy = domain.Strategy(o.Strategy)
	}
	if o.Target != "" {
		if cfg.Target, err = domain.ParseTarget(o.Target); err != nil {
			return domain.Config{}, err
		}
	}
	if o.Format != "" {
		cfg.Emit.Format = o.Format
	}
	if o.Output != "" {
		cfg.Emit.Output = o.Output
		if !filepath.IsAbs(o.Output) {
			cfg.Emit.Output = filepath.Join(cwd, o.Output)
		}
	}
	if o.Force {
		cfg.Force = true
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	// Checked before anything is provisioned.
	if err := a.renderer.CheckFormat(cfg.Emit.Format); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Plan provisions the libraries for the configured target and returns the
// verified link plan. Unsupported targets yield an empty plan and a warning.
func (a *App) Plan(ctx context.Context, cfg domain.Config) (domain.LinkPlan, error) {
	ctx, span := a.tracer.Start(ctx, "plan")
	defer span.End()
	span.SetAttribute("target", cfg.Target.String())
	span.SetAttribute("strategy", string(cfg.Strategy))

	variant := domain.ResolveVariant(cfg.Target)
	platform, ok := cfg.Platform(variant)
	if variant == domain.VariantUnsupported || !ok {
		a.logger.Warn("no link configuration for target " + cfg.Target.String() + ", emitting nothing")
		return domain.LinkPlan{Target: cfg.Target, Variant: domain.VariantUnsupported}, nil
	}

	bundle, err := a.provisioner.Provision(ctx, cfg, platform)
	if err != nil {
		span.RecordError(err)
		return domain.LinkPlan{}, err
	}

	plan, err := a.emitter.Plan(cfg.Target, platform, bundle)
	if err != nil {
		span.RecordError(err)
		return domain.LinkPlan{}, err
	}
	return plan, nil
}

// EmitOptions configures the Emit method.
type EmitOptions struct {
	Overrides
	Watch bool
}

// Emit provisions the libraries and writes the link directives. With Watch
// it keeps re-emitting on changes until ctx is cancelled.
func (a *App) Emit(ctx context.Context, opts EmitOptions) error {
	cfg, err := a.LoadConfig(opts.Overrides)
	if err != nil {
		return err
	}

	if err := a.emitOnce(ctx, cfg); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}
	return a.watch(ctx, cfg, opts.Overrides)
}

func (a *App) emitOnce(ctx context.Context, cfg domain.Config) error {
	ctx, span := a.tracer.Start(ctx, "emit")
	defer span.End()

	plan, err := a.Plan(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return err
	}

	var buf bytes.Buffer
	if err := a.renderer.Render(&buf, plan, domain.RenderOptions{
		Format:       cfg.Emit.Format,
		OutputPath:   cfg.Emit.Output,
		Package:      cfg.Emit.Package,
		ExtraLDFlags: cfg.Emit.ExtraLDFlags,
	}); err != nil {
		span.RecordError(err)
		return err
	}

	if cfg.Emit.Output == "" {
		if _, err := a.stdout.Write(buf.Bytes()); err != nil {
			return zerr.Wrap(err, domain.ErrRenderFailed.Error())
		}
		return nil
	}

	if err := writeOutput(cfg.Emit.Output, buf.Bytes()); err != nil {
		span.RecordError(err)
		return err
	}
	if buf.Len() == 0 {
		a.logger.Info("Removed " + cfg.Emit.Output)
	} else {
		a.logger.Info("Wrote " + cfg.Emit.Output)
	}
	return nil
}

// writeOutput atomically replaces the output file. Empty output removes the
// file, since an empty Go file would not compile.
func writeOutput(path string, data []byte) error {
	if len(data) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "path", path)
		}
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "path", path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "path", path)
	}
	return nil
}
