package mapping

import (
	"fmt"
	"slices"
)

// ConverterRegistry holds validated converter definitions and provides lookup.
type ConverterRegistry struct {
	converters map[string]*ConverterDef
}

// NewConverterRegistry creates a new empty converter registry.
func NewConverterRegistry() *ConverterRegistry {
	return &ConverterRegistry{
		converters: make(map[string]*ConverterDef),
	}
}

// BuildRegistry builds a converter registry from a MappingFile. Duplicate and
// incomplete definitions are reported; the first definition of a name wins.
func BuildRegistry(mf *MappingFile) (*ConverterRegistry, []error) {
	registry := NewConverterRegistry()

	var errs []error

	for i := range mf.Converters {
		def := &mf.Converters[i]

		switch {
		case def.Name == "":
			errs = append(errs, fmt.Errorf("converter %d has no name", i))
			continue
		case registry.Has(def.Name):
			errs = append(errs, fmt.Errorf("duplicate converter %q", def.Name))
			continue
		case def.Read == "" || def.Write == "":
			errs = append(errs, fmt.Errorf("converter %q needs both read and write functions", def.Name))
		}

		registry.converters[def.Name] = def
	}

	return registry, errs
}

// Add adds a converter to the registry.
func (r *ConverterRegistry) Add(def *ConverterDef) {
	r.converters[def.Name] = def
}

// Get returns a converter by name, or nil if not found.
func (r *ConverterRegistry) Get(name string) *ConverterDef {
	return r.converters[name]
}

// Has returns true if a converter with the given name exists.
func (r *ConverterRegistry) Has(name string) bool {
	_, exists := r.converters[name]
	return exists
}

// Names returns all converter names, sorted.
func (r *ConverterRegistry) Names() []string {
	names := make([]string, 0, len(r.converters))
	for name := range r.converters {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// All returns all converters sorted by name.
func (r *ConverterRegistry) All() []*ConverterDef {
	out := make([]*ConverterDef, 0, len(r.converters))
	for _, name := range r.Names() {
		out = append(out, r.converters[name])
	}

	return out
}
