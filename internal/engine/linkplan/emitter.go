// Package linkplan turns a provisioned bundle into the ordered link
// directives of a target.
package linkplan

import (
	"path/filepath"
	"strings"

	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports"
	"go.trai.ch/zerr"
)

// Emitter builds link plans and checks that every library it links through a
// search path resolves to a file in that path.
type Emitter struct {
	verifier ports.Verifier
}

// NewEmitter creates a new Emitter.
func NewEmitter(verifier ports.Verifier) *Emitter {
	return &Emitter{verifier: verifier}
}

// Plan returns the link plan for the bundle. A bundle with a search path
// yields one search-path directive followed by one link directive per
// library. A bundle without one yields link directives only and is not
// verified; the system linker resolves those libraries.
func (e *Emitter) Plan(target domain.Target, platform domain.Platform, bundle domain.Bundle) (domain.LinkPlan, error) {
	plan := domain.LinkPlan{
		Target:     target,
		Variant:    platform.Variant,
		Directives: make([]domain.Directive, 0, len(bundle.Libraries)+1),
	}

	if !bundle.SearchPath {
		for _, lib := range bundle.Libraries {
			plan.Directives = append(plan.Directives, domain.Directive{
				Kind: domain.DirectiveLink,
				Name: lib.LinkName,
				Link: lib.Link,
			})
		}
		return plan, nil
	}

	files := make([]string, 0, len(bundle.Libraries))
	for _, lib := range bundle.Libraries {
		files = append(files, domain.ArtifactFile(platform.Variant, lib.LinkName, lib.Link))
	}

	missing, err := e.verifier.MissingArtifacts(bundle.Dir, files)
	if err != nil {
		return domain.LinkPlan{}, err
	}
	if len(missing) > 0 {
		err := zerr.Wrap(domain.ErrArtifactMissing, "missing "+strings.Join(missing, ", "))
		err = zerr.With(err, "dir", bundle.Dir)
		return domain.LinkPlan{}, zerr.With(err, "variant", platform.Variant.String())
	}

	plan.Directives = append(plan.Directives, domain.Directive{
		Kind: domain.DirectiveSearchPath,
		Path: bundle.Dir,
	})
	for i, lib := range bundle.Libraries {
		plan.Directives = append(plan.Directives, domain.Directive{
			Kind: domain.DirectiveLink,
			Name: lib.LinkName,
			Link: lib.Link,
			File: filepath.Join(bundle.Dir, files[i]),
		})
	}
	return plan, nil
}
