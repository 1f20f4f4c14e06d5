package domain

import "path/filepath"

const (
	// StateDirName is the name of the internal workspace directory.
	StateDirName = ".fftwlink"

	// OutDirName is the name of the output directory inside the workspace directory.
	OutDirName = "out"

	// StoreDirName is the name of the provision record store directory.
	StoreDirName = "store"

	// PrecompiledDirName is the name of the bundled artifact root.
	PrecompiledDirName = "precompiled"

	// ScratchSourceDirName is the source copy inside the output directory.
	ScratchSourceDirName = "src"

	// LibDirName is the install directory of source builds inside the output directory.
	LibDirName = "lib"

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "fftwlink.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultStatePath returns the workspace directory relative to the manifest dir.
func DefaultStatePath() string {
	return StateDirName
}

// DefaultOutPath returns the output directory relative to the manifest dir.
// It joins .fftwlink and out.
func DefaultOutPath() string {
	return filepath.Join(StateDirName, OutDirName)
}

// StorePath returns the record store directory below a state directory.
func StorePath(stateDir string) string {
	return filepath.Join(stateDir, StoreDirName)
}
