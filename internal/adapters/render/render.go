// Package render writes link plans in the formats consumed by Go builds.
package render

import (
	"io"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports"
	"go.trai.ch/zerr"
)

// Supported output formats.
const (
	FormatLines   = "lines"
	FormatLDFlags = "ldflags"
	FormatCgo     = "cgo"
	FormatJSON    = "json"
)

type renderFunc func(w io.Writer, plan domain.LinkPlan, opts domain.RenderOptions) error

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer, dispatching on the requested format.
type Renderer struct {
	formats map[string]renderFunc
}

// NewRenderer creates a Renderer for every supported format.
func NewRenderer() *Renderer {
	return &Renderer{
		formats: map[string]renderFunc{
			FormatLines:   renderLines,
			FormatLDFlags: renderLDFlags,
			FormatCgo:     renderCgo,
			FormatJSON:    renderJSON,
		},
	}
}

// Formats lists the supported format names in sorted order.
func Formats() []string {
	formats := []string{FormatLines, FormatLDFlags, FormatCgo, FormatJSON}
	slices.Sort(formats)
	return formats
}

// CheckFormat rejects format names without a renderer.
func (r *Renderer) CheckFormat(format string) error {
	if _, ok := r.formats[format]; ok {
		return nil
	}
	err := zerr.Wrap(domain.ErrUnknownFormat, "supported formats: "+strings.Join(Formats(), ", "))
	return zerr.With(err, "format", format)
}

// Render writes the plan in opts.Format.
func (r *Renderer) Render(w io.Writer, plan domain.LinkPlan, opts domain.RenderOptions) error {
	if err := r.CheckFormat(opts.Format); err != nil {
		return err
	}
	fn := r.formats[opts.Format]
	if err := fn(w, plan, opts); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "format", opts.Format)
	}
	return nil
}

// renderLines writes one directive per line:
//
//	link-search=<dir>
//	link-lib=static=<name>
//	link-lib=<name>
func renderLines(w io.Writer, plan domain.LinkPlan, _ domain.RenderOptions) error {
	var sb strings.Builder
	for _, d := range plan.Directives {
		switch d.Kind {
		case domain.DirectiveSearchPath:
			sb.WriteString("link-search=" + d.Path + "\n")
		case domain.DirectiveLink:
			if d.Link == domain.LinkStatic {
				sb.WriteString("link-lib=static=" + d.Name + "\n")
			} else {
				sb.WriteString("link-lib=" + d.Name + "\n")
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// renderLDFlags writes the plan as a single line of linker flags.
func renderLDFlags(w io.Writer, plan domain.LinkPlan, opts domain.RenderOptions) error {
	if plan.Empty() {
		return nil
	}
	flags := ldflags(plan, opts.ExtraLDFlags, func(p string) string { return p })
	_, err := io.WriteString(w, strings.Join(flags, " ")+"\n")
	return err
}

// linkerInputExts are the file types cgo accepts as direct LDFLAGS inputs.
var linkerInputExts = []string{".a", ".o", ".obj", ".dll", ".dylib", ".so", ".tbd"}

// ldflags converts directives into linker arguments. Static libraries with a
// resolved artifact are passed by path so the linker cannot pick a shared
// object of the same name. Other artifacts, such as MSVC import libraries,
// are linked by name through the search path.
func ldflags(plan domain.LinkPlan, extra []string, mapPath func(string) string) []string {
	flags := make([]string, 0, len(plan.Directives)+len(extra))
	for _, d := range plan.Directives {
		switch d.Kind {
		case domain.DirectiveSearchPath:
			flags = append(flags, "-L"+mapPath(d.Path))
		case domain.DirectiveLink:
			if d.Link == domain.LinkStatic && linkableByPath(d.File) {
				flags = append(flags, mapPath(d.File))
			} else {
				flags = append(flags, "-l"+d.Name)
			}
		}
	}
	return append(flags, extra...)
}

func linkableByPath(file string) bool {
	if file == "" {
		return false
	}
	return slices.Contains(linkerInputExts, filepath.Ext(file))
}
