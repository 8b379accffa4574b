// Package interp turns compiled adapter plans into working xmlbind adapters by
// executing them against Go values through reflection.
//
// Plans are translated once into closures when an adapter is built; reading and
// writing never walk the IR again.
package interp

import (
	"errors"
	"fmt"
	"reflect"

	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
	"xmlbind-generator/xmlbind"
)

// ErrUnbound indicates a plan refers to a type or constructor the registry does not know.
var ErrUnbound = errors.New("unbound type")

// Registry binds model types to Go types. It doubles as the model.Hierarchy of the
// bound types: a type is a subtype of every bound interface it implements.
type Registry struct {
	types        map[model.TypeID]reflect.Type
	constructors map[string]reflect.Value
}

var _ model.Hierarchy = (*Registry)(nil)

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		types:        make(map[model.TypeID]reflect.Type),
		constructors: make(map[string]reflect.Value),
	}
}

// Register binds id to t. Pointer types are bound to their element type.
func (r *Registry) Register(id model.TypeID, t reflect.Type) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	r.types[id] = t
}

// RegisterConstructor binds a constructor name to fn. fn returns T, *T, or either of
// them together with an error.
func (r *Registry) RegisterConstructor(name string, fn any) error {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return fmt.Errorf("constructor %s: %T is not a function", name, fn)
	}

	if out := v.Type().NumOut(); out < 1 || out > 2 ||
		(out == 2 && v.Type().Out(1) != reflect.TypeFor[error]()) {
		return fmt.Errorf("constructor %s: must return a value and an optional error", name)
	}

	r.constructors[name] = v

	return nil
}

// Bind registers T under id, named after T when id is zero.
func Bind[T any](r *Registry, id model.TypeID) model.TypeID {
	t := reflect.TypeFor[T]()
	if id.IsZero() {
		id = TypeIDOf(t)
	}

	r.Register(id, t)

	return id
}

// TypeIDOf returns the model id of a named Go type.
func TypeIDOf(t reflect.Type) model.TypeID {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return model.TypeID{PkgPath: t.PkgPath(), Name: t.Name()}
}

// Type returns the Go type bound to id.
func (r *Registry) Type(id model.TypeID) (reflect.Type, bool) {
	t, ok := r.types[id]
	return t, ok
}

// IsSubtype implements model.Hierarchy.
func (r *Registry) IsSubtype(sub, super model.TypeID) bool {
	if sub == super {
		return false
	}

	if super.IsAny() {
		return true
	}

	st, ok := r.types[sub]
	if !ok {
		return false
	}

	pt, ok := r.types[super]
	if !ok || pt.Kind() != reflect.Interface {
		return false
	}

	return st.Implements(pt) || reflect.PointerTo(st).Implements(pt)
}

// Install builds an adapter for every plan and registers it in cfg under the plan's
// type name. Plans that cannot be bound are reported together; the others are still
// installed.
func (r *Registry) Install(cfg *xmlbind.Config, plans []*ir.AdapterPlan) error {
	var errs []error

	for _, p := range plans {
		a, err := r.Adapter(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		cfg.RegisterTypeAdapter(p.Type.String(), a)
	}

	return errors.Join(errs...)
}
