package typesystem

// TypeList is a module-local type table, indexed by integer (spec.md
// §3.3, §4.4.2: "its own type_list (module-local type definitions,
// indexed by integer)"). Index 3 in module A and index 3 in module B
// are unrelated entries — callers must always resolve through the
// currently-active TypeList, never cache a raw index across a module
// boundary.
type TypeList struct {
	entries []Type
}

func NewTypeList() *TypeList { return &TypeList{} }

// Add appends t and returns its module-local index.
func (tl *TypeList) Add(t Type) int {
	tl.entries = append(tl.entries, t)
	return len(tl.entries) - 1
}

// At resolves a module-local type index against this list.
func (tl *TypeList) At(idx int) (Type, bool) {
	if idx < 0 || idx >= len(tl.entries) {
		return nil, false
	}
	return tl.entries[idx], true
}

func (tl *TypeList) Len() int { return len(tl.entries) }

// TypeMapShape describes a MAP/ELEMENT container's field shape (spec.md
// §3.2: "MAP | ordered key→Item mapping with a TypeMap shape
// reference"). It is itself registered in a TypeList via TRecord, but
// container construction also needs a stable field-order list — which a
// bare TRecord (a Go map) does not provide — hence this small wrapper.
type TypeMapShape struct {
	Name   string
	Fields []FieldShape
}

type FieldShape struct {
	Name string
	Type Type
}

// AsRecord projects this shape to the HM TRecord representation, e.g.
// for printing or for unification against an inferred type elsewhere.
func (s TypeMapShape) AsRecord() TRecord {
	fields := make(map[string]Type, len(s.Fields))
	for _, f := range s.Fields {
		fields[f.Name] = f.Type
	}
	return TRecord{Fields: fields}
}

// Context holds the process-wide notion of "currently active" type_list
// (spec.md §3.4, §4.4.2). Exactly one TypeList is active at a time;
// internal/jit's Context.Run and Context.CallExported save, swap, and
// restore this pointer through WithTypeList around a module's code.
type Context struct {
	Active *TypeList
}

func NewContext() *Context { return &Context{Active: NewTypeList()} }

// WithTypeList runs fn with list swapped in as the active TypeList,
// restoring the previous one afterward — the "save rt->type_list; swap;
// call; restore" bracket of spec.md §4.4.2, implemented here as a single
// reusable helper instead of scattering save/restore pairs at every
// call site.
func (c *Context) WithTypeList(list *TypeList, fn func()) {
	prev := c.Active
	c.Active = list
	defer func() { c.Active = prev }()
	fn()
}
