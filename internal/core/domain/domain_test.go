package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/fftwlink/internal/core/domain"
)

func TestLayoutPaths(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "DefaultStatePath",
			got:      domain.DefaultStatePath(),
			expected: ".fftwlink",
		},
		{
			name:     "DefaultOutPath",
			got:      domain.DefaultOutPath(),
			expected: filepath.Join(".fftwlink", "out"),
		},
		{
			name:     "StorePath",
			got:      domain.StorePath(".fftwlink"),
			expected: filepath.Join(".fftwlink", "store"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s() = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	root := filepath.Join("work", "project")
	cfg := domain.DefaultConfig(root)

	assert.Equal(t, domain.StrategyBundled, cfg.Strategy)
	assert.Equal(t, filepath.Join(root, ".fftwlink", "out"), cfg.OutDir)
	assert.Equal(t, filepath.Join(root, "precompiled"), cfg.PrecompiledDir)
	assert.Equal(t, filepath.Join(root, "fftw-3.3.8"), cfg.SourceDir)
	assert.Equal(t, domain.DefaultArchiveURL, cfg.Download.URL)
	assert.Equal(t, "anonymous", cfg.Download.Username)
	assert.Equal(t, "anonymous", cfg.Download.Password)
	assert.Equal(t, "fftw_windows.zip", cfg.Download.Archive)
	assert.Positive(t, cfg.Jobs)

	p, ok := cfg.Platform(domain.VariantLinuxX64)
	assert.True(t, ok)
	assert.Equal(t, "linux/x64", p.Dir)
	_, ok = cfg.Platform(domain.VariantUnsupported)
	assert.False(t, ok)
}

func TestCommand_String(t *testing.T) {
	cmd := domain.Command{Name: "make", Args: []string{"-j4"}}
	assert.Equal(t, "make -j4", cmd.String())

	cmd = domain.Command{Name: "/opt/my src/configure", Args: []string{"--prefix=/out", ""}}
	assert.Equal(t, `"/opt/my src/configure" --prefix=/out ""`, cmd.String())
}

func TestLinkPlan_Accessors(t *testing.T) {
	plan := domain.LinkPlan{
		Directives: []domain.Directive{
			{Kind: domain.DirectiveSearchPath, Path: "/lib"},
			{Kind: domain.DirectiveLink, Name: "fftw3", Link: domain.LinkStatic},
			{Kind: domain.DirectiveLink, Name: "fftw3f", Link: domain.LinkStatic},
		},
	}

	assert.False(t, plan.Empty())
	assert.Equal(t, []string{"/lib"}, plan.SearchPaths())
	assert.Len(t, plan.Links(), 2)
	assert.True(t, domain.LinkPlan{}.Empty())
}

func TestRecordKey(t *testing.T) {
	assert.Equal(t, "source/fftw3f", domain.RecordKey(domain.StrategySource, "fftw3f"))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*domain.Config) {}},
		{name: "unknown strategy", mutate: func(c *domain.Config) { c.Strategy = "nix" }, wantErr: domain.ErrUnknownStrategy},
		{name: "zero jobs", mutate: func(c *domain.Config) { c.Jobs = 0 }, wantErr: domain.ErrInvalidConfig},
		{name: "empty manifest", mutate: func(c *domain.Config) { c.ManifestDir = "" }, wantErr: domain.ErrInvalidConfig},
		{
			name: "bad link kind",
			mutate: func(c *domain.Config) {
				p := c.Platforms[domain.VariantLinuxX64]
				p.Link = "shared"
				c.Platforms[domain.VariantLinuxX64] = p
			},
			wantErr: domain.ErrInvalidConfig,
		},
		{
			name: "empty platform dir",
			mutate: func(c *domain.Config) {
				p := c.Platforms[domain.VariantWindows]
				p.Dir = ""
				c.Platforms[domain.VariantWindows] = p
			},
			wantErr: domain.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultConfig("/project")
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
