package render

import (
	"encoding/json"
	"io"

	"go.trai.ch/fftwlink/internal/core/domain"
)

// renderJSON writes the plan as indented JSON. Empty plans are written too,
// with an empty directive list.
func renderJSON(w io.Writer, plan domain.LinkPlan, _ domain.RenderOptions) error {
	if plan.Directives == nil {
		plan.Directives = []domain.Directive{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}
