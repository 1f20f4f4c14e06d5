package ports

// Verifier defines the interface for verifying file existence.
//
//go:generate mockgen -destination=mocks/verifier_mock.go -package=mocks -source=verifier.go
type Verifier interface {
	// MissingArtifacts returns the files that do not exist in dir, in input order.
	MissingArtifacts(dir string, files []string) ([]string, error)
}
