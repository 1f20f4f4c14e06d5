package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.trai.ch/fftwlink/internal/core/domain"
)

// GeneratedHeader marks files written by the cgo renderer.
const GeneratedHeader = "// Code generated by fftwlink. DO NOT EDIT."

const defaultPackage = "fftw"

// renderCgo writes a Go file carrying the plan as a #cgo LDFLAGS directive,
// constrained to the plan's variant.
func renderCgo(w io.Writer, plan domain.LinkPlan, opts domain.RenderOptions) error {
	if plan.Empty() {
		return nil
	}

	pkg := opts.Package
	if pkg == "" {
		pkg = defaultPackage
	}

	flags := ldflags(plan, opts.ExtraLDFlags, srcDirRelative(opts.OutputPath))

	var sb strings.Builder
	sb.WriteString(GeneratedHeader + "\n\n")
	if constraint := plan.Variant.GoBuildConstraint(); constraint != "" {
		fmt.Fprintf(&sb, "//go:build %s\n\n", constraint)
	}
	fmt.Fprintf(&sb, "package %s\n\n", pkg)
	fmt.Fprintf(&sb, "// #cgo LDFLAGS: %s\n", strings.Join(flags, " "))
	sb.WriteString("import \"C\"\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// srcDirRelative rewrites paths relative to the directory of the generated
// file as ${SRCDIR}/... so the file stays valid when the tree moves. Paths
// are left absolute when there is no output file or no relative path exists.
func srcDirRelative(outputPath string) func(string) string {
	if outputPath == "" {
		return filepath.ToSlash
	}
	base := filepath.Dir(outputPath)
	return func(p string) string {
		rel, err := filepath.Rel(base, p)
		if err != nil {
			return filepath.ToSlash(p)
		}
		return "${SRCDIR}/" + filepath.ToSlash(rel)
	}
}
