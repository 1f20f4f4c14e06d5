package domain

// Remote is a location a file can be fetched from.
type Remote struct {
	URL      string
	Username string
	Password string
}

// RenderOptions controls how a link plan is written out.
type RenderOptions struct {
	Format string
	// OutputPath is the destination file. Relative cgo paths are computed from its directory.
	OutputPath   string
	Package      string
	ExtraLDFlags []string
}
