package field

import "github.com/aadb-project/aadb/internal/domain/search/filter"

// All is the search selector that fans a term out over every registered field.
const All = "all"

// Field is an immutable registry entry describing a searchable/filterable field.
type Field struct {
	name          string
	partialFilter bool
}

// New creates a Field whose direct filter is an exact match.
func New(name string) Field {
	return Field{name: name}
}

// NewPartial creates a Field whose direct filter is a substring match.
func NewPartial(name string) Field {
	return Field{name: name, partialFilter: true}
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// FilterMode returns the match mode used when the field is a direct filter target.
func (f Field) FilterMode() filter.Mode {
	if f.partialFilter {
		return filter.ModeContains
	}
	return filter.ModeExact
}

// SearchMode returns the match mode used when a free-text search hits the field.
// Broad search is always partial.
func (f Field) SearchMode() filter.Mode { return filter.ModeContains }

// Synonyms expands a search term into alternate spellings on one field.
type Synonyms struct {
	// Field receives the extra contains-matches.
	Field string
	// Triggers fire when the lowercased term contains any of them.
	Triggers []string
	// ExactTriggers fire only when the lowercased term equals one of them.
	ExactTriggers []string
	// Terms are the alternate spellings matched on Field.
	Terms []string
}

// Registry is the static, ordered set of fields a collection can be searched and filtered on.
type Registry struct {
	fields   []Field
	index    map[string]int
	synonyms []Synonyms
}

// NewRegistry creates a registry. Later duplicates of a name are ignored.
func NewRegistry(fields []Field, synonyms ...Synonyms) Registry {
	r := Registry{
		fields:   make([]Field, 0, len(fields)),
		index:    make(map[string]int, len(fields)),
		synonyms: synonyms,
	}
	for _, f := range fields {
		if _, dup := r.index[f.name]; dup || f.name == "" {
			continue
		}
		r.index[f.name] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r
}

// Lookup returns the field registered under name.
func (r Registry) Lookup(name string) (Field, bool) {
	i, ok := r.index[name]
	if !ok {
		return Field{}, false
	}
	return r.fields[i], true
}

// Has reports whether name is a recognized field.
func (r Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// FilterMode returns the direct-filter mode for name. ok is false for unknown fields.
func (r Registry) FilterMode(name string) (mode filter.Mode, ok bool) {
	f, ok := r.Lookup(name)
	if !ok {
		return filter.ModeExact, false
	}
	return f.FilterMode(), true
}

// SearchMode returns the free-text search mode for name. ok is false for unknown fields.
func (r Registry) SearchMode(name string) (mode filter.Mode, ok bool) {
	f, ok := r.Lookup(name)
	if !ok {
		return filter.ModeContains, false
	}
	return f.SearchMode(), true
}

// Fields returns the registered fields in declaration order.
func (r Registry) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Names returns the registered field names in declaration order.
func (r Registry) Names() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.name
	}
	return out
}

// Synonyms returns the synonym expansion rules.
func (r Registry) Synonyms() []Synonyms { return r.synonyms }
