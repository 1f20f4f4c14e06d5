package ports

// Extractor reads members out of an archive.
//
//go:generate mockgen -source=archive.go -destination=mocks/mock_archive.go -package=mocks
type Extractor interface {
	// Extract writes the named members of the archive into dstDir.
	Extract(archivePath string, members []string, dstDir string) error
}

// Digester computes and checks archive digests.
type Digester interface {
	// Digest returns the canonical digest of the file, e.g. "sha256:<hex>".
	Digest(path string) (string, error)
	// Verify checks the file against an expected digest.
	Verify(path, expected string) error
}
