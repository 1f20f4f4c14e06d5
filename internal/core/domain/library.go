package domain

// Precision is the floating point precision a library variant is built for.
type Precision string

const (
	// PrecisionDouble is the default double precision build.
	PrecisionDouble Precision = "double"
	// PrecisionSingle is the single precision build.
	PrecisionSingle Precision = "single"
)

// Library names one of the two numeric libraries.
type Library struct {
	Name      string    `json:"name"`
	Precision Precision `json:"precision"`
}

// Libraries returns the provisioned library pair in link order.
func Libraries() []Library {
	return []Library{
		{Name: "fftw3", Precision: PrecisionDouble},
		{Name: "fftw3f", Precision: PrecisionSingle},
	}
}

// LinkedLibrary is a library as it appears in a bundle: the name handed to the
// linker and how it is linked.
type LinkedLibrary struct {
	Library  Library
	LinkName string
	Link     LinkKind
}

// Bundle is the provisioned set of artifacts a link plan is built from.
type Bundle struct {
	// Dir is the directory holding the artifacts.
	Dir string
	// SearchPath is false when the linker resolves libraries from system paths.
	SearchPath bool
	Libraries  []LinkedLibrary
}

// ArtifactFile returns the file name the linker resolves for a library.
// Windows uses lib<name>.lib for both static and import libraries.
func ArtifactFile(v Variant, name string, kind LinkKind) string {
	if v.IsWindows() {
		return "lib" + name + ".lib"
	}
	if kind == LinkDynamic {
		return "lib" + name + ".so"
	}
	return "lib" + name + ".a"
}
