// Package config provides the configuration loader for fftwlink.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables read by the loader.
const (
	EnvTargetOS    = "FFTWLINK_TARGET_OS"
	EnvTargetArch  = "FFTWLINK_TARGET_ARCH"
	EnvManifestDir = "FFTWLINK_MANIFEST_DIR"
	EnvOutDir      = "FFTWLINK_OUT_DIR"
	EnvStrategy    = "FFTWLINK_STRATEGY"
	EnvJobs        = "NUM_JOBS"
	EnvGOOS        = "GOOS"
	EnvGOARCH      = "GOARCH"
)

// SupportedVersion is the config file version this loader understands.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file and the process environment.
type Loader struct {
	Logger    ports.Logger
	lookupEnv func(string) (string, bool)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, lookupEnv: os.LookupEnv}
}

// Load builds the configuration. Precedence, lowest first: defaults, config file, environment.
func (l *Loader) Load(cwd, configPath string) (domain.Config, error) {
	manifestDir := cwd
	if dir, ok := l.env(EnvManifestDir); ok {
		manifestDir = resolvePath(cwd, dir)
	}
	manifestDir, err := filepath.Abs(manifestDir)
	if err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "path", manifestDir)
	}

	cfg := domain.DefaultConfig(manifestDir)

	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(manifestDir, domain.ConfigFileName)
	} else {
		configPath = resolvePath(cwd, configPath)
	}

	file, err := readConfigfile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// No config file: defaults and environment only.
	case err != nil:
		return domain.Config{}, zerr.With(err, "path", configPath)
	default:
		if file.Version != "" && file.Version != SupportedVersion {
			l.Logger.Warn("fftwlink.yaml: unsupported version " + strconv.Quote(file.Version) + ", reading as version " + SupportedVersion)
		}
		if err := applyFile(&cfg, file); err != nil {
			return domain.Config{}, zerr.With(err, "path", configPath)
		}
	}

	if err := l.applyEnv(&cfg); err != nil {
		return domain.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func (l *Loader) env(key string) (string, bool) {
	v, ok := l.lookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (l *Loader) firstEnv(keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := l.env(key); ok {
			return v, true
		}
	}
	return "", false
}

func (l *Loader) applyEnv(cfg *domain.Config) error {
	if v, ok := l.firstEnv(EnvTargetOS, EnvGOOS); ok {
		cfg.Target.OS = v
	}
	if v, ok := l.firstEnv(EnvTargetArch, EnvGOARCH); ok {
		cfg.Target.Arch = v
	}
	if v, ok := l.env(EnvOutDir); ok {
		cfg.OutDir = resolvePath(cfg.ManifestDir, v)
	}
	if v, ok := l.env(EnvStrategy); ok {
		cfg.Strategy = domain.Strategy(v)
	}
	if v, ok := l.env(EnvJobs); ok {
		jobs, err := strconv.Atoi(v)
		if err != nil || jobs < 1 {
			err := zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "invalid job count"), "env", EnvJobs)
			return zerr.With(err, "value", v)
		}
		cfg.Jobs = jobs
	}
	return nil
}

// readConfigfile reads and decodes a config file. Unknown keys are rejected.
func readConfigfile(path string) (*Configfile, error) {
	// #nosec G304 -- path is chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file Configfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return &file, nil
}

func applyFile(cfg *domain.Config, file *Configfile) error {
	if file.Strategy != "" {
		cfg.Strategy = domain.Strategy(file.Strategy)
	}
	if file.Target != nil {
		if file.Target.OS != "" {
			cfg.Target.OS = file.Target.OS
		}
		if file.Target.Arch != "" {
			cfg.Target.Arch = file.Target.Arch
		}
	}
	if file.Jobs != 0 {
		cfg.Jobs = file.Jobs
	}

	applyDirs(cfg, file.Dirs)
	applyDownload(cfg, file.Download)

	if file.Archiver.Command != "" {
		cfg.Archiver.Command = file.Archiver.Command
	}
	if file.Archiver.Machine != "" {
		cfg.Archiver.Machine = file.Archiver.Machine
	}
	if file.Source.ConfigureFlags != nil {
		cfg.Source.ConfigureFlags = file.Source.ConfigureFlags
	}
	if file.Source.SingleFlag != "" {
		cfg.Source.SingleFlag = file.Source.SingleFlag
	}

	if err := applyPlatforms(cfg, file.Platforms); err != nil {
		return err
	}

	if file.Emit.Format != "" {
		cfg.Emit.Format = file.Emit.Format
	}
	if file.Emit.Output != "" {
		cfg.Emit.Output = resolvePath(cfg.ManifestDir, file.Emit.Output)
	}
	if file.Emit.Package != "" {
		cfg.Emit.Package = file.Emit.Package
	}
	if file.Emit.ExtraLDFlags != nil {
		cfg.Emit.ExtraLDFlags = file.Emit.ExtraLDFlags
	}
	return nil
}

func applyDirs(cfg *domain.Config, dirs DirsDTO) {
	if dirs.Out != "" {
		cfg.OutDir = resolvePath(cfg.ManifestDir, dirs.Out)
	}
	if dirs.State != "" {
		cfg.StateDir = resolvePath(cfg.ManifestDir, dirs.State)
	}
	if dirs.Precompiled != "" {
		cfg.PrecompiledDir = resolvePath(cfg.ManifestDir, dirs.Precompiled)
	}
	if dirs.Source != "" {
		cfg.SourceDir = resolvePath(cfg.ManifestDir, dirs.Source)
	}
}

func applyDownload(cfg *domain.Config, dl DownloadDTO) {
	if dl.URL != "" {
		cfg.Download.URL = dl.URL
	}
	if dl.Username != "" {
		cfg.Download.Username = dl.Username
	}
	if dl.Password != "" {
		cfg.Download.Password = dl.Password
	}
	if dl.Archive != "" {
		cfg.Download.Archive = dl.Archive
	}
	if dl.SHA256 != "" {
		digest := strings.ToLower(dl.SHA256)
		if !strings.Contains(digest, ":") {
			digest = "sha256:" + digest
		}
		cfg.Download.Digest = digest
	}
	if dl.ABISuffix != "" {
		cfg.Download.ABISuffix = dl.ABISuffix
	}
}

func applyPlatforms(cfg *domain.Config, platforms map[string]PlatformDTO) error {
	for key, dto := range platforms {
		variant, ok := domain.ParseVariant(key)
		if !ok {
			return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "unknown platform variant"), "variant", key)
		}

		p := cfg.Platforms[variant]
		p.Variant = variant
		if dto.Dir != "" {
			p.Dir = filepath.ToSlash(dto.Dir)
		}
		if dto.Link != "" {
			p.Link = domain.LinkKind(dto.Link)
		}
		if dto.SearchPath != nil {
			p.SearchPath = *dto.SearchPath
		}
		cfg.Platforms[variant] = p
	}
	return nil
}

func resolvePath(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
