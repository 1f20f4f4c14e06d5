package provision_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports/mocks"
	"go.trai.ch/fftwlink/internal/engine/provision"
	"go.uber.org/mock/gomock"
)

func TestSelector_Provision(t *testing.T) {
	ctrl := gomock.NewController(t)
	bundled := mocks.NewMockProvisioner(ctrl)
	source := mocks.NewMockProvisioner(ctrl)
	download := mocks.NewMockProvisioner(ctrl)
	selector := provision.NewSelector(bundled, source, download)

	cfg := domain.DefaultConfig("/work")
	linux := cfg.Platforms[domain.VariantLinuxX64]
	windows := cfg.Platforms[domain.VariantWindows]

	t.Run("dispatches on strategy", func(t *testing.T) {
		want := domain.Bundle{Dir: "/work/.fftwlink/out/lib", SearchPath: true}

		cfg := cfg
		cfg.Strategy = domain.StrategySource
		source.EXPECT().Provision(gomock.Any(), cfg, linux).Return(want, nil)

		got, err := selector.Provision(context.Background(), cfg, linux)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("bundled serves every supported variant", func(t *testing.T) {
		cfg := cfg
		cfg.Strategy = domain.StrategyBundled
		bundled.EXPECT().Provision(gomock.Any(), cfg, windows).Return(domain.Bundle{}, nil)

		_, err := selector.Provision(context.Background(), cfg, windows)
		require.NoError(t, err)
	})

	t.Run("source is rejected on windows", func(t *testing.T) {
		cfg := cfg
		cfg.Strategy = domain.StrategySource

		_, err := selector.Provision(context.Background(), cfg, windows)
		require.ErrorIs(t, err, domain.ErrStrategyUnsupported)
	})

	t.Run("download is rejected on linux", func(t *testing.T) {
		cfg := cfg
		cfg.Strategy = domain.StrategyDownload

		_, err := selector.Provision(context.Background(), cfg, linux)
		require.ErrorIs(t, err, domain.ErrStrategyUnsupported)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := selector.Select(domain.Strategy("conan"), domain.VariantLinuxX64)
		require.ErrorIs(t, err, domain.ErrUnknownStrategy)
	})
}
