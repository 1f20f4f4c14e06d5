package domain

// DirectiveKind distinguishes search path declarations from link declarations.
type DirectiveKind string

const (
	// DirectiveSearchPath adds a library search directory.
	DirectiveSearchPath DirectiveKind = "search-path"
	// DirectiveLink links one library.
	DirectiveLink DirectiveKind = "link"
)

// Directive is a single entry of a link plan.
type Directive struct {
	Kind DirectiveKind `json:"kind"`
	// Path is set for search path directives.
	Path string `json:"path,omitempty"`
	// Name is the linker name of the library for link directives.
	Name string   `json:"name,omitempty"`
	Link LinkKind `json:"link,omitempty"`
	// File is the resolved artifact path. It is empty when the system linker
	// resolves the library.
	File string `json:"file,omitempty"`
}

// LinkPlan is the ordered directive set emitted for one target.
type LinkPlan struct {
	Target     Target      `json:"target"`
	Variant    Variant     `json:"variant"`
	Directives []Directive `json:"directives"`
}

// Empty reports whether the plan emits nothing.
func (p LinkPlan) Empty() bool {
	return len(p.Directives) == 0
}

// SearchPaths returns the search path directives of the plan in order.
func (p LinkPlan) SearchPaths() []string {
	var paths []string
	for _, d := range p.Directives {
		if d.Kind == DirectiveSearchPath {
			paths = append(paths, d.Path)
		}
	}
	return paths
}

// Links returns the link directives of the plan in order.
func (p LinkPlan) Links() []Directive {
	var links []Directive
	for _, d := range p.Directives {
		if d.Kind == DirectiveLink {
			links = append(links, d)
		}
	}
	return links
}
