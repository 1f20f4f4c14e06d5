package ports

// TreeCopier defines the interface for copying directory trees.
//
//go:generate mockgen -destination=mocks/copier_mock.go -package=mocks -source=copier.go
type TreeCopier interface {
	// CopyTree copies the content of src into dst, overwriting existing files.
	CopyTree(src, dst string) error
}
