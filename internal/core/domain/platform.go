package domain

import "path"

// LinkKind selects how a library is linked.
type LinkKind string

const (
	// LinkStatic links the library archive into the binary.
	LinkStatic LinkKind = "static"
	// LinkDynamic links against a shared library resolved at load time.
	LinkDynamic LinkKind = "dynamic"
)

// Valid reports whether the link kind is known.
func (k LinkKind) Valid() bool {
	return k == LinkStatic || k == LinkDynamic
}

// Platform is one row of the platform table: where the bundled artifacts of a
// variant live and how they are linked.
type Platform struct {
	Variant Variant
	// Dir is the bundle directory relative to the precompiled root, slash separated.
	Dir  string
	Link LinkKind
	// SearchPath is false when the libraries are expected from the system linker
	// path instead of the bundle directory.
	SearchPath bool
}

// DefaultPlatforms returns the built-in platform table.
//
// linux-aarch64 relies on shared objects shipped by the target SDK, so it
// declares no search path and links dynamically.
func DefaultPlatforms() map[Variant]Platform {
	return map[Variant]Platform{
		VariantWindows: {
			Variant:    VariantWindows,
			Dir:        "windows",
			Link:       LinkStatic,
			SearchPath: true,
		},
		VariantLinuxARM: {
			Variant:    VariantLinuxARM,
			Dir:        path.Join("linux", "armv7"),
			Link:       LinkStatic,
			SearchPath: true,
		},
		VariantLinuxX64: {
			Variant:    VariantLinuxX64,
			Dir:        path.Join("linux", "x64"),
			Link:       LinkStatic,
			SearchPath: true,
		},
		VariantLinuxAArch64: {
			Variant:    VariantLinuxAArch64,
			Dir:        path.Join("linux", "aarch64"),
			Link:       LinkDynamic,
			SearchPath: false,
		},
	}
}
