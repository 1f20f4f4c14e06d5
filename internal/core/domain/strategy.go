package domain

// Strategy selects how the native libraries are obtained.
type Strategy string

const (
	// StrategyBundled uses the precompiled artifacts shipped with the project.
	StrategyBundled Strategy = "bundled"
	// StrategySource compiles the vendored source tree (Linux only).
	StrategySource Strategy = "source"
	// StrategyDownload fetches the prebuilt DLL archive (Windows only).
	StrategyDownload Strategy = "download"
)

// Valid reports whether the strategy is known.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyBundled, StrategySource, StrategyDownload:
		return true
	default:
		return false
	}
}

// Supports reports whether the strategy can provision the given variant.
func (s Strategy) Supports(v Variant) bool {
	switch s {
	case StrategyBundled:
		return v != VariantUnsupported
	case StrategySource:
		return v != VariantUnsupported && !v.IsWindows()
	case StrategyDownload:
		return v.IsWindows()
	default:
		return false
	}
}
