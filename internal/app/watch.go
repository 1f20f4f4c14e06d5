package app

import (
	"context"
	"path/filepath"

	"go.trai.ch/fftwlink/internal/adapters/watcher"
	"go.trai.ch/fftwlink/internal/core/domain"
)

// watch re-emits whenever the inputs of the current strategy or the config
// file change. Failed runs are logged and watching continues.
func (a *App) watch(ctx context.Context, cfg domain.Config, o Overrides) error {
	paths := watchPaths(cfg, o.ConfigPath)
	if err := a.watcher.Start(ctx, paths...); err != nil {
		return err
	}
	defer a.watcher.Stop() //nolint:errcheck // shutting down

	trigger := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func([]string) {
		select {
		case trigger <- struct{}{}:
		default:
		}
	})
	go func() {
		for ev := range a.watcher.Events() {
			debouncer.Add(ev.Path)
		}
	}()

	a.logger.Info("Watching for changes, press Ctrl+C to stop")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-trigger:
			cfg, err := a.LoadConfig(o)
			if err != nil {
				a.logger.Error(err)
				continue
			}
			if err := a.emitOnce(ctx, cfg); err != nil {
				a.logger.Error(err)
			}
		}
	}
}

// watchPaths returns the config file plus the inputs of the strategy.
// Source builds watch the vendored tree, not the output directory they write to.
func watchPaths(cfg domain.Config, configPath string) []string {
	if configPath == "" {
		configPath = filepath.Join(cfg.ManifestDir, domain.ConfigFileName)
	}
	paths := []string{configPath}

	switch cfg.Strategy {
	case domain.StrategyBundled:
		paths = append(paths, cfg.PrecompiledDir)
	case domain.StrategySource:
		paths = append(paths, cfg.SourceDir)
	case domain.StrategyDownload:
		paths = append(paths, filepath.Join(cfg.OutDir, cfg.Download.Archive))
	}
	return paths
}
