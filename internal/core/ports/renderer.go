package ports

import (
	"io"

	"go.trai.ch/fftwlink/internal/core/domain"
)

// Renderer writes a link plan in one of the supported output formats.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Render writes the plan to w in opts.Format.
	// An empty plan writes nothing, except for formats that describe the plan itself.
	Render(w io.Writer, plan domain.LinkPlan, opts domain.RenderOptions) error
	// CheckFormat reports ErrUnknownFormat for formats Render cannot write.
	CheckFormat(format string) error
}
