// Package build holds build-time information.
package build

// Version information. The defaults are overwritten by linker flags, e.g.
// -X go.trai.ch/fftwlink/internal/build.Version=v1.2.0.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
