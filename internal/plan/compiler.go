package plan

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"xmlbind-generator/internal/convert"
	"xmlbind-generator/internal/diagnostic"
	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
)

// ValueLocal is the name of the local bound to the value being read or written.
const ValueLocal = "value"

// Options configures compilation.
type Options struct {
	// PrimitiveConverters lists scalar kinds read and written through built-in
	// converters instead of typed accessors.
	PrimitiveConverters []model.ScalarKind
}

// Compiler compiles declared types of one model. After NewCompiler returns, the model
// is only read, so CompileType may be called concurrently.
type Compiler struct {
	model       *model.Model
	hierarchy   model.Hierarchy
	chain       convert.Chain
	diagnostics diagnostic.Diagnostics
}

// NewCompiler links m if needed and validates it against h. A nil h skips subtype
// checks and treats all types as unrelated.
func NewCompiler(m *model.Model, h model.Hierarchy, opts Options) (*Compiler, error) {
	if m == nil {
		return nil, errors.New("nil model")
	}

	if !m.Linked() {
		if err := m.Link(); err != nil {
			return nil, err
		}
	}

	c := &Compiler{
		model:       m,
		hierarchy:   h,
		chain:       convert.NewChain(opts.PrimitiveConverters...),
		diagnostics: m.Validate(h),
	}

	if h == nil {
		c.hierarchy = model.HierarchyFunc(func(model.TypeID, model.TypeID) bool { return false })
	}

	return c, nil
}

// Diagnostics returns every diagnostic found while building, linking and validating.
func (c *Compiler) Diagnostics() diagnostic.Diagnostics {
	return c.diagnostics
}

// Model returns the compiled model.
func (c *Compiler) Model() *model.Model {
	return c.model
}

// CompileType compiles the adapter plan of one declared type.
func (c *Compiler) CompileType(id model.TypeID) (*ir.AdapterPlan, error) {
	decl, ok := c.model.Type(id)
	if !ok {
		return nil, fmt.Errorf("%w: type %s is not declared", model.ErrInvalidModel, id)
	}

	if errs := c.diagnostics.ForType(id.String()); len(errs) > 0 {
		return nil, &InvalidTypeError{Diagnostics: errs}
	}

	return newUnit(c, decl).compile()
}

// unit is the compilation of one declared type.
type unit struct {
	c     *Compiler
	m     *model.Model
	decl  *model.TypeDecl
	ctx   *Context
	temps map[int]ir.Temp
}

func newUnit(c *Compiler, decl *model.TypeDecl) *unit {
	return &unit{
		c:     c,
		m:     c.model,
		decl:  decl,
		ctx:   NewContext(),
		temps: make(map[int]ir.Temp),
	}
}

func (u *unit) compile() (*ir.AdapterPlan, error) {
	root := u.m.Root(u.decl)

	p := &ir.AdapterPlan{
		Type:        u.decl.ID,
		XMLName:     u.decl.XMLName,
		Value:       ValueLocal,
		Constructor: u.decl.Constructor,
	}

	if u.decl.UsesConstructor() {
		p.Temps = u.allocateTemps()
	}

	p.Read = u.read(root)

	write, err := u.write(root)
	if err != nil {
		return nil, err
	}

	p.Write = write
	p.Binders = u.binders(root)

	return p, nil
}

// allocateTemps creates one temporary per constructor parameter, in parameter order.
func (u *unit) allocateTemps() []ir.Temp {
	var params []*model.Field

	for i := range u.m.Fields {
		f := &u.m.Fields[i]
		if f.Owner == u.decl.ID && !f.IsSubstitution() && f.Access.Kind == model.AccessConstructor {
			params = append(params, f)
		}
	}

	slices.SortFunc(params, func(a, b *model.Field) int {
		return cmp.Compare(a.Access.Param, b.Access.Param)
	})

	temps := make([]ir.Temp, 0, len(params))
	for _, f := range params {
		t := ir.Temp{
			Name:     u.ctx.Unique("param"),
			Param:    f.Access.Param,
			Type:     f.Type,
			Sequence: f.Kind.IsSequence(),
		}
		u.temps[t.Param] = t
		temps = append(temps, t)
	}

	return temps
}

// origin returns the field whose member stores f's value: the polymorphic field for
// substitutions, f itself otherwise.
func (u *unit) origin(f *model.Field) *model.Field {
	if f.IsSubstitution() {
		return u.m.Field(f.Origin)
	}

	return f
}

// readTarget is the member a read of f stores into.
func (u *unit) readTarget(f *model.Field) ir.Target {
	t := u.writeTarget(f)
	if t.Access.Kind == model.AccessConstructor {
		t.Temp = u.temps[t.Access.Param].Name
	}

	return t
}

// writeTarget is the member a write of f reads from.
func (u *unit) writeTarget(f *model.Field) ir.Target {
	src := u.origin(f)

	return ir.Target{
		Field:    src.ID,
		Name:     src.Member,
		Access:   src.Access,
		Type:     src.Type,
		Sequence: src.Kind.IsSequence(),
	}
}

func (u *unit) member(f *model.Field) ir.MemberOf {
	return ir.MemberOf{Recv: ValueLocal, Target: u.writeTarget(f)}
}

// defaultName is the element name the adapter of id writes when no override is given.
func (u *unit) defaultName(id model.TypeID) string {
	if d, ok := u.m.Type(id); ok {
		return d.XMLName
	}

	return defaultXMLName(id)
}
