package config

import "go.trai.ch/fftwlink/internal/core/ports"

// NewLoaderWithEnv creates a Loader reading the environment from env instead of the process.
func NewLoaderWithEnv(logger ports.Logger, env map[string]string) *Loader {
	return &Loader{
		Logger: logger,
		lookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
	}
}
