package blocks

// Type describes a registered block type for UI surfaces such as the
// inserter menu. Behavior lives with the rendering layer; the registry only
// carries identity, label and icon.
type Type struct {
	Name  string
	Title string
	Icon  string
}

// Registry is an ordered collection of block types. Order matters: it is
// the display order of the inserter menu.
type Registry struct {
	types []Type
	index map[string]int
}

// NewRegistry builds a registry from the given types, keeping their order.
// Re-registering a name overwrites the earlier entry in place.
func NewRegistry(types ...Type) *Registry {
	r := &Registry{index: make(map[string]int, len(types))}
	for _, t := range types {
		r.Register(t)
	}
	return r
}

// Register adds or replaces a block type.
func (r *Registry) Register(t Type) {
	if i, ok := r.index[t.Name]; ok {
		r.types[i] = t
		return
	}
	r.index[t.Name] = len(r.types)
	r.types = append(r.types, t)
}

// Get looks up a type by name.
func (r *Registry) Get(name string) (Type, bool) {
	i, ok := r.index[name]
	if !ok {
		return Type{}, false
	}
	return r.types[i], true
}

// Types returns the registered types in registration order.
func (r *Registry) Types() []Type {
	return append([]Type(nil), r.types...)
}

// DefaultRegistry returns the core block types every document can use.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Type{Name: "core/paragraph", Title: "Paragraph", Icon: "¶"},
		Type{Name: "core/heading", Title: "Heading", Icon: "H"},
		Type{Name: "core/list", Title: "List", Icon: "≡"},
		Type{Name: "core/quote", Title: "Quote", Icon: "❝"},
		Type{Name: "core/image", Title: "Image", Icon: "▣"},
		Type{Name: "core/code", Title: "Code", Icon: "</>"},
		Type{Name: "core/separator", Title: "Separator", Icon: "—"},
		Type{Name: ReusableRef, Title: "Reusable Block", Icon: "⟳"},
	)
}
