package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fftwlink/internal/adapters/config"
	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newLoader(t *testing.T, env map[string]string) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	return config.NewLoaderWithEnv(mocks.NewMockLogger(ctrl), env)
}

func TestLoader_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := newLoader(t, nil).Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ManifestDir)
	assert.Equal(t, filepath.Join(dir, ".fftwlink", "out"), cfg.OutDir)
	assert.Equal(t, filepath.Join(dir, ".fftwlink"), cfg.StateDir)
	assert.Equal(t, domain.Target{OS: runtime.GOOS, Arch: runtime.GOARCH}, cfg.Target)
	assert.Equal(t, domain.StrategyBundled, cfg.Strategy)
	assert.Equal(t, runtime.NumCPU(), cfg.Jobs)
	assert.Equal(t, domain.DefaultPlatforms(), cfg.Platforms)
}

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
version: "1"
strategy: source
target:
  os: linux
  arch: aarch64
dirs:
  out: build/native
  source: third_party/fftw-3.3.8
jobs: 3
download:
  sha256: ABCDEF
archiver:
  machine: ARM64
source:
  configure_flags: ["--with-pic", "--enable-static", "--enable-avx2"]
platforms:
  linux-aarch64:
    dir: linux/aarch64
    link: static
    search_path: true
emit:
  format: cgo
  output: fftw/zz_link.go
  package: fftw
  extra_ldflags: ["-lm"]
`)

	cfg, err := newLoader(t, nil).Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, domain.StrategySource, cfg.Strategy)
	assert.Equal(t, domain.Target{OS: "linux", Arch: "aarch64"}, cfg.Target)
	assert.Equal(t, filepath.Join(dir, "build", "native"), cfg.OutDir)
	assert.Equal(t, filepath.Join(dir, "third_party", "fftw-3.3.8"), cfg.SourceDir)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, "sha256:abcdef", cfg.Download.Digest)
	assert.Equal(t, domain.DefaultArchiveURL, cfg.Download.URL)
	assert.Equal(t, "ARM64", cfg.Archiver.Machine)
	assert.Equal(t, "lib.exe", cfg.Archiver.Command)
	assert.Equal(t, []string{"--with-pic", "--enable-static", "--enable-avx2"}, cfg.Source.ConfigureFlags)
	assert.Equal(t, "--enable-single", cfg.Source.SingleFlag)
	assert.Equal(t, "cgo", cfg.Emit.Format)
	assert.Equal(t, filepath.Join(dir, "fftw", "zz_link.go"), cfg.Emit.Output)
	assert.Equal(t, []string{"-lm"}, cfg.Emit.ExtraLDFlags)

	p := cfg.Platforms[domain.VariantLinuxAArch64]
	assert.Equal(t, domain.LinkStatic, p.Link)
	assert.True(t, p.SearchPath)
	assert.Equal(t, domain.DefaultPlatforms()[domain.VariantLinuxX64], cfg.Platforms[domain.VariantLinuxX64])
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "strategy: source\njobs: 3\ntarget:\n  os: linux\n  arch: x86_64\n")

	cfg, err := newLoader(t, map[string]string{
		config.EnvTargetOS:   "windows",
		config.EnvGOARCH:     "amd64",
		config.EnvStrategy:   "download",
		config.EnvJobs:       "12",
		config.EnvOutDir:     "custom-out",
		config.EnvTargetArch: "",
	}).Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, domain.Target{OS: "windows", Arch: "amd64"}, cfg.Target)
	assert.Equal(t, domain.StrategyDownload, cfg.Strategy)
	assert.Equal(t, 12, cfg.Jobs)
	assert.Equal(t, filepath.Join(dir, "custom-out"), cfg.OutDir)
}

func TestLoader_TargetEnvPrecedence(t *testing.T) {
	dir := t.TempDir()

	cfg, err := newLoader(t, map[string]string{
		config.EnvTargetOS:   "linux",
		config.EnvGOOS:       "windows",
		config.EnvTargetArch: "armv7",
		config.EnvGOARCH:     "amd64",
	}).Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, domain.Target{OS: "linux", Arch: "armv7"}, cfg.Target)
}

func TestLoader_ManifestDirEnv(t *testing.T) {
	cwd := t.TempDir()
	manifest := filepath.Join(cwd, "bindings")
	require.NoError(t, os.Mkdir(manifest, 0o750))
	writeConfig(t, manifest, "strategy: source\n")

	cfg, err := newLoader(t, map[string]string{config.EnvManifestDir: "bindings"}).Load(cwd, "")
	require.NoError(t, err)

	assert.Equal(t, manifest, cfg.ManifestDir)
	assert.Equal(t, domain.StrategySource, cfg.Strategy)
	assert.Equal(t, filepath.Join(manifest, "precompiled"), cfg.PrecompiledDir)
}

func TestLoader_InvalidJobs(t *testing.T) {
	for _, value := range []string{"abc", "0", "-2"} {
		t.Run(value, func(t *testing.T) {
			_, err := newLoader(t, map[string]string{config.EnvJobs: value}).Load(t.TempDir(), "")
			require.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errIs       error
		errContains string
	}{
		{name: "malformed yaml", content: "strategy: [source\n", errContains: domain.ErrConfigParseFailed.Error()},
		{name: "unknown key", content: "stratgy: source\n", errContains: domain.ErrConfigParseFailed.Error()},
		{name: "unknown strategy", content: "strategy: nix\n", errIs: domain.ErrUnknownStrategy},
		{name: "unknown variant", content: "platforms:\n  darwin:\n    dir: mac\n", errIs: domain.ErrInvalidConfig},
		{name: "bad link kind", content: "platforms:\n  linux-x64:\n    link: shared\n", errIs: domain.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := newLoader(t, nil).Load(dir, "")
			require.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
			if tt.errContains != "" {
				assert.ErrorContains(t, err, tt.errContains)
			}
		})
	}
}

func TestLoader_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	path := writeConfig(t, other, "strategy: source\n")

	cfg, err := newLoader(t, nil).Load(dir, path)
	require.NoError(t, err)
	assert.Equal(t, domain.StrategySource, cfg.Strategy)

	_, err = newLoader(t, nil).Load(dir, filepath.Join(other, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

func TestLoader_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "")

	cfg, err := newLoader(t, nil).Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StrategyBundled, cfg.Strategy)
}

func TestLoader_UnsupportedVersionWarns(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "version: \"2\"\n")

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	_, err := config.NewLoaderWithEnv(mockLogger, nil).Load(dir, "")
	require.NoError(t, err)
}
