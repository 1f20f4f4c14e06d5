package domain

import (
	"path/filepath"
	"runtime"

	"go.trai.ch/zerr"
)

// Config is the explicit configuration bundle a provisioning run works from.
// It replaces ambient environment reads: everything the engine needs is here.
type Config struct {
	Target   Target
	Strategy Strategy

	// ManifestDir is the project directory holding precompiled/ and the vendored source.
	ManifestDir string
	// OutDir receives downloaded archives, build scratch space and built libraries.
	OutDir string
	// StateDir holds provision records.
	StateDir string
	// PrecompiledDir is the root of the bundled artifacts.
	PrecompiledDir string
	// SourceDir is the vendored FFTW source tree.
	SourceDir string

	// Jobs is the parallel job count passed to make.
	Jobs int
	// Force rebuilds or re-extracts artifacts even when they exist.
	Force bool

	Platforms map[Variant]Platform
	Download  DownloadConfig
	Archiver  ArchiverConfig
	Source    SourceConfig
	Emit      EmitConfig
}

// DownloadConfig describes the remote prebuilt archive.
type DownloadConfig struct {
	URL      string
	Username string
	Password string
	// Archive is the file name of the cached archive inside OutDir.
	Archive string
	// Digest pins the archive content, e.g. "sha256:<hex>". Empty means trust on first use.
	Digest string
	// ABISuffix is appended to library names inside the archive (libfftw3-3.dll).
	ABISuffix string
}

// ArchiverConfig describes the tool that turns .def files into import libraries.
type ArchiverConfig struct {
	Command string
	Machine string
}

// SourceConfig holds the configure flags for source builds.
type SourceConfig struct {
	ConfigureFlags []string
	// SingleFlag is added for the single precision build.
	SingleFlag string
}

// EmitConfig controls how the link plan is rendered.
type EmitConfig struct {
	Format       string
	Output       string
	Package      string
	ExtraLDFlags []string
}

const (
	// DefaultArchiveURL is the FFTW 3.3.5 64-bit DLL archive.
	DefaultArchiveURL = "ftp://ftp.fftw.org/pub/fftw/fftw-3.3.5-dll64.zip"
	// DefaultArchiveName is the local file name of the downloaded archive.
	DefaultArchiveName = "fftw_windows.zip"
	// DefaultSourceDirName is the vendored source tree name.
	DefaultSourceDirName = "fftw-3.3.8"
	// AnonymousUser is the credential used for anonymous FTP.
	AnonymousUser = "anonymous"
)

// DefaultConfig returns the configuration used when nothing is overridden.
// Directories are resolved against manifestDir.
func DefaultConfig(manifestDir string) Config {
	return Config{
		Target:         Target{OS: runtime.GOOS, Arch: runtime.GOARCH},
		Strategy:       StrategyBundled,
		ManifestDir:    manifestDir,
		OutDir:         filepath.Join(manifestDir, DefaultOutPath()),
		StateDir:       filepath.Join(manifestDir, DefaultStatePath()),
		PrecompiledDir: filepath.Join(manifestDir, PrecompiledDirName),
		SourceDir:      filepath.Join(manifestDir, DefaultSourceDirName),
		Jobs:           runtime.NumCPU(),
		Platforms:      DefaultPlatforms(),
		Download: DownloadConfig{
			URL:       DefaultArchiveURL,
			Username:  AnonymousUser,
			Password:  AnonymousUser,
			Archive:   DefaultArchiveName,
			ABISuffix: "-3",
		},
		Archiver: ArchiverConfig{
			Command: "lib.exe",
			Machine: "X64",
		},
		Source: SourceConfig{
			ConfigureFlags: []string{"--with-pic", "--enable-static", "--disable-doc"},
			SingleFlag:     "--enable-single",
		},
		Emit: EmitConfig{
			Format:  "lines",
			Package: "fftw",
		},
	}
}

// Platform returns the platform row for a variant.
func (c Config) Platform(v Variant) (Platform, bool) {
	p, ok := c.Platforms[v]
	return p, ok
}

// Validate checks the values that cannot be corrected later in the run.
func (c Config) Validate() error {
	if c.ManifestDir == "" {
		return zerr.Wrap(ErrInvalidConfig, "manifest directory is empty")
	}
	if !c.Strategy.Valid() {
		return zerr.With(zerr.Wrap(ErrUnknownStrategy, "invalid strategy"), "strategy", string(c.Strategy))
	}
	if c.Jobs < 1 {
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "jobs must be at least 1"), "jobs", c.Jobs)
	}
	for v, p := range c.Platforms {
		if p.Dir == "" {
			return zerr.With(zerr.Wrap(ErrInvalidConfig, "platform directory is empty"), "variant", v.String())
		}
		if !p.Link.Valid() {
			err := zerr.With(zerr.Wrap(ErrInvalidConfig, "unknown link kind"), "variant", v.String())
			return zerr.With(err, "link", string(p.Link))
		}
	}
	return nil
}
