// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/fftwlink/internal/core/domain"
)

// Executor defines the interface for running subprocesses.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes the command and streams its output to the logger.
	//
	// It returns an error if the command cannot be started or exits non-zero.
	Run(ctx context.Context, cmd domain.Command) error
}
