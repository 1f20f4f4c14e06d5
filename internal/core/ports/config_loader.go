package ports

import "go.trai.ch/fftwlink/internal/core/domain"

// ConfigLoader defines the interface for loading the configuration bundle.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load builds the configuration from defaults, the config file and the environment.
	// cwd is the manifest directory used when the environment does not name one.
	// An empty configPath selects fftwlink.yaml inside the manifest directory.
	Load(cwd, configPath string) (domain.Config, error)
}
