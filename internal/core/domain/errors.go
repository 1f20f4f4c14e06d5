package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidConfig is returned when a configuration value cannot be used.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnknownStrategy is returned when a strategy name is not recognized.
	ErrUnknownStrategy = zerr.New("unknown strategy, expected 'bundled', 'source' or 'download'")

	// ErrStrategyUnsupported is returned when a strategy cannot provision the target variant.
	ErrStrategyUnsupported = zerr.New("strategy does not support target")

	// ErrUnknownFormat is returned when an emit format is not recognized.
	ErrUnknownFormat = zerr.New("unknown emit format")

	// ErrPlatformMissing is returned when the platform table has no row for a variant.
	ErrPlatformMissing = zerr.New("no platform configured for variant")

	// ErrArtifactMissing is returned when a linked library is not present in its search path.
	ErrArtifactMissing = zerr.New("artifact missing")

	// ErrCommandFailed is returned when a subprocess fails to start or exits non-zero.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCopyFailed is returned when the vendored source tree cannot be copied.
	ErrCopyFailed = zerr.New("failed to copy source tree")

	// ErrFetchFailed is returned when the remote archive cannot be retrieved.
	ErrFetchFailed = zerr.New("failed to fetch archive")

	// ErrUnsupportedScheme is returned for remote URLs without a fetcher.
	ErrUnsupportedScheme = zerr.New("unsupported URL scheme")

	// ErrChecksumMismatch is returned when the archive digest does not match the expected one.
	ErrChecksumMismatch = zerr.New("archive checksum mismatch")

	// ErrInvalidDigest is returned when a configured digest cannot be parsed.
	ErrInvalidDigest = zerr.New("invalid archive digest")

	// ErrArchiveOpenFailed is returned when the archive cannot be opened.
	ErrArchiveOpenFailed = zerr.New("failed to open archive")

	// ErrArchiveMemberMissing is returned when a required member is absent from the archive.
	ErrArchiveMemberMissing = zerr.New("archive member missing")

	// ErrExtractFailed is returned when an archive member cannot be written.
	ErrExtractFailed = zerr.New("failed to extract archive member")

	// ErrHashFailed is returned when hashing the source tree fails.
	ErrHashFailed = zerr.New("failed to hash source tree")

	// ErrStoreCreateFailed is returned when the record store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create record store directory")

	// ErrStoreReadFailed is returned when a record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read provision record")

	// ErrStoreUnmarshalFailed is returned when a record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal provision record")

	// ErrStoreMarshalFailed is returned when a record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal provision record")

	// ErrStoreWriteFailed is returned when a record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write provision record")

	// ErrRenderFailed is returned when the link plan cannot be written out.
	ErrRenderFailed = zerr.New("failed to render link plan")

	// ErrProvisionFailed is returned when provisioning the native libraries fails.
	ErrProvisionFailed = zerr.New("provisioning failed")
)
