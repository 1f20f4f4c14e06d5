package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Target describes the platform the native libraries are provisioned for.
// It is read once per invocation and never mutated afterwards.
type Target struct {
	OS   string `json:"os" yaml:"os"`
	Arch string `json:"arch" yaml:"arch"`
}

// String returns the target as "os/arch".
func (t Target) String() string {
	return t.OS + "/" + t.Arch
}

// ParseTarget parses an "os/arch" pair such as "linux/arm64".
func ParseTarget(s string) (Target, error) {
	osName, arch, ok := strings.Cut(s, "/")
	if !ok || osName == "" || arch == "" || strings.Contains(arch, "/") {
		return Target{}, zerr.With(zerr.Wrap(ErrInvalidConfig, "target must be os/arch"), "target", s)
	}
	return Target{OS: osName, Arch: arch}, nil
}

// Normalize returns a copy of the target with canonical OS and architecture names.
func (t Target) Normalize() Target {
	return Target{
		OS:   strings.ToLower(strings.TrimSpace(t.OS)),
		Arch: NormalizeArch(t.Arch),
	}
}

// NormalizeArch maps Go and toolchain architecture names onto the names used
// by the variant table (x86_64, aarch64, arm).
func NormalizeArch(arch string) string {
	switch a := strings.ToLower(strings.TrimSpace(arch)); a {
	case "amd64", "x86_64", "x64":
		return "x86_64"
	case "arm64", "aarch64":
		return "aarch64"
	case "arm", "armv7", "armv7l", "armhf":
		return "arm"
	default:
		return a
	}
}

// Variant is one of the fixed set of supported platform variants.
type Variant int

const (
	// VariantUnsupported marks a target without a link configuration.
	VariantUnsupported Variant = iota
	// VariantWindows covers every Windows target.
	VariantWindows
	// VariantLinuxARM is 32-bit ARM Linux.
	VariantLinuxARM
	// VariantLinuxX64 is x86_64 Linux.
	VariantLinuxX64
	// VariantLinuxAArch64 is 64-bit ARM Linux.
	VariantLinuxAArch64
)

var variantNames = map[Variant]string{
	VariantUnsupported:  "unsupported",
	VariantWindows:      "windows",
	VariantLinuxARM:     "linux-arm",
	VariantLinuxX64:     "linux-x64",
	VariantLinuxAArch64: "linux-aarch64",
}

// String returns the variant's config key.
func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return variantNames[VariantUnsupported]
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// ParseVariant parses a variant config key. Unknown keys report false.
func ParseVariant(s string) (Variant, bool) {
	for v, name := range variantNames {
		if v != VariantUnsupported && name == s {
			return v, true
		}
	}
	return VariantUnsupported, false
}

// SupportedVariants lists every variant that has a link configuration, in table order.
func SupportedVariants() []Variant {
	return []Variant{VariantWindows, VariantLinuxARM, VariantLinuxX64, VariantLinuxAArch64}
}

// ResolveVariant maps a target onto a platform variant. It is a pure function.
func ResolveVariant(t Target) Variant {
	t = t.Normalize()
	if t.OS == "windows" {
		return VariantWindows
	}
	if t.OS != "linux" {
		return VariantUnsupported
	}
	switch t.Arch {
	case "arm":
		return VariantLinuxARM
	case "x86_64":
		return VariantLinuxX64
	case "aarch64":
		return VariantLinuxAArch64
	default:
		return VariantUnsupported
	}
}

// GoBuildConstraint returns the //go:build expression selecting this variant.
// Windows is matched on GOOS alone since every Windows target shares one bundle.
func (v Variant) GoBuildConstraint() string {
	switch v {
	case VariantWindows:
		return "windows"
	case VariantLinuxARM:
		return "linux && arm"
	case VariantLinuxX64:
		return "linux && amd64"
	case VariantLinuxAArch64:
		return "linux && arm64"
	default:
		return ""
	}
}

// IsWindows reports whether the variant targets Windows.
func (v Variant) IsWindows() bool {
	return v == VariantWindows
}
