package interp

import (
	"fmt"
	"reflect"

	"xmlbind-generator/internal/ir"
	"xmlbind-generator/xmlbind"
)

// op is one compiled statement.
type op func(s *state) error

// state is the evaluation state of one FromXML or ToXML call.
type state struct {
	r   xmlbind.Reader
	w   xmlbind.Writer
	cfg *xmlbind.Config
	f   *frame

	attribute    string
	element      string
	nameOverride string
	locals       map[string]reflect.Value
}

func seq(ops []op) op {
	switch len(ops) {
	case 0:
		return func(*state) error { return nil }
	case 1:
		return ops[0]
	default:
		return func(s *state) error {
			for _, o := range ops {
				if err := o(s); err != nil {
					return err
				}
			}

			return nil
		}
	}
}

// adapter executes one compiled plan.
type adapter struct {
	plan  *ir.AdapterPlan
	typ   reflect.Type
	temps map[string]reflect.Type
	read  op
	write op
}

var _ xmlbind.TypeAdapter = (*adapter)(nil)

// builder translates a plan into ops.
type builder struct {
	reg       *Registry
	plan      *ir.AdapterPlan
	typ       reflect.Type
	ctor      reflect.Value
	tempTypes map[string]reflect.Type
	// nested is the child binder registry keyed by placeholder name.
	nested    map[string]*xmlbind.NestedChildElementBinder[*frame]
}

// Adapter builds the type adapter of p. Adapters return *T from FromXML and accept T
// or *T in ToXML.
func (r *Registry) Adapter(p *ir.AdapterPlan) (xmlbind.TypeAdapter, error) {
	typ, ok := r.types[p.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnbound, p.Type)
	}

	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("type %s: %s is not a struct", p.Type, typ)
	}

	b := &builder{
		reg:       r,
		plan:      p,
		typ:       typ,
		tempTypes: make(map[string]reflect.Type),
		nested:    make(map[string]*xmlbind.NestedChildElementBinder[*frame], len(p.Binders)),
	}
	if err := b.bindConstructor(); err != nil {
		return nil, fmt.Errorf("type %s: %w", p.Type, err)
	}

	a, err := b.build()
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", p.Type, err)
	}

	return a, nil
}

func (b *builder) bindConstructor() error {
	if b.plan.Constructor == "" {
		return nil
	}

	ctor, ok := b.reg.constructors[b.plan.Constructor]
	if !ok {
		return fmt.Errorf("%w: constructor %s", ErrUnbound, b.plan.Constructor)
	}

	ft := ctor.Type()
	if out := ft.Out(0); out != b.typ && out != reflect.PointerTo(b.typ) {
		return fmt.Errorf("constructor %s returns %s, not %s", b.plan.Constructor, out, b.typ)
	}

	for _, t := range b.plan.Temps {
		if t.Param >= ft.NumIn() {
			return fmt.Errorf("constructor %s has no parameter %d", b.plan.Constructor, t.Param)
		}

		b.tempTypes[t.Name] = ft.In(t.Param)
	}

	b.ctor = ctor

	return nil
}

func (b *builder) build() (*adapter, error) {
	for _, bp := range b.plan.Binders {
		nb, err := b.binder(bp)
		if err != nil {
			return nil, err
		}

		b.nested[bp.Name] = nb
	}

	read, err := b.readStmts(b.plan.Read)
	if err != nil {
		return nil, err
	}

	write, err := b.writeStmts(b.plan.Write)
	if err != nil {
		return nil, err
	}

	return &adapter{plan: b.plan, typ: b.typ, temps: b.tempTypes, read: read, write: write}, nil
}

// binder builds the nested binder of a placeholder element.
func (b *builder) binder(p *ir.BinderPlan) (*xmlbind.NestedChildElementBinder[*frame], error) {
	nb := xmlbind.NewNestedChildElementBinder[*frame]()

	for _, h := range p.Attributes {
		body, err := b.readStmts(h.Body)
		if err != nil {
			return nil, err
		}

		nb.Attributes[h.Name] = xmlbind.AttributeBinderFunc[*frame](handler(body))
	}

	for _, h := range p.Children {
		if h.Nested != nil {
			nested, err := b.binder(h.Nested)
			if err != nil {
				return nil, err
			}

			nb.Children[h.Name] = nested

			continue
		}

		body, err := b.readStmts(h.Body)
		if err != nil {
			return nil, err
		}

		nb.Children[h.Name] = xmlbind.ChildElementBinderFunc[*frame](handler(body))
	}

	return nb, nil
}

func handler(body op) func(r xmlbind.Reader, cfg *xmlbind.Config, f *frame) error {
	return func(r xmlbind.Reader, cfg *xmlbind.Config, f *frame) error {
		return body(&state{r: r, cfg: cfg, f: f})
	}
}

func (a *adapter) newFrame() *frame {
	f := &frame{temps: make(map[string]reflect.Value, len(a.temps))}

	if a.plan.Constructor == "" {
		f.value = reflect.New(a.typ)
	}

	for name, t := range a.temps {
		f.temps[name] = reflect.New(t).Elem()
	}

	return f
}

// FromXML implements xmlbind.TypeAdapter.
func (a *adapter) FromXML(r xmlbind.Reader, cfg *xmlbind.Config) (any, error) {
	s := &state{r: r, cfg: cfg, f: a.newFrame()}
	if err := a.read(s); err != nil {
		return nil, err
	}

	return s.f.value.Interface(), nil
}

// ToXML implements xmlbind.TypeAdapter.
func (a *adapter) ToXML(w xmlbind.Writer, cfg *xmlbind.Config, value any, nameOverride string) error {
	v, err := a.receiver(value)
	if err != nil {
		return err
	}

	s := &state{
		w:            w,
		cfg:          cfg,
		f:            &frame{value: v},
		nameOverride: nameOverride,
		locals:       make(map[string]reflect.Value),
	}

	return a.write(s)
}

// receiver returns value as a non-nil *T.
func (a *adapter) receiver(value any) (reflect.Value, error) {
	v := reflect.ValueOf(value)

	switch {
	case !v.IsValid():
		return reflect.Value{}, fmt.Errorf("type %s: %w", a.plan.Type, errNilValue)
	case v.Type() == reflect.PointerTo(a.typ):
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("type %s: %w", a.plan.Type, errNilValue)
		}

		return v, nil
	case v.Type() == a.typ:
		p := reflect.New(a.typ)
		p.Elem().Set(v)

		return p, nil
	default:
		return reflect.Value{}, fmt.Errorf("type %s: cannot write %T", a.plan.Type, value)
	}
}
