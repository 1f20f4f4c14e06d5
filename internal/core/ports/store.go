package ports

import "go.trai.ch/fftwlink/internal/core/domain"

// ProvisionStore defines the interface for storing and retrieving provision records.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ProvisionStore interface {
	// Get retrieves the record for a given key.
	// Returns nil, nil if not found.
	Get(root, key string) (*domain.ProvisionRecord, error)

	// Put stores the record.
	Put(root string, rec domain.ProvisionRecord) error

	// List returns every stored record ordered by key.
	List(root string) ([]domain.ProvisionRecord, error)
}
