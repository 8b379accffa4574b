package analyze

import (
	"fmt"
	"go/types"
	"slices"

	"xmlbind-generator/internal/common"
	"xmlbind-generator/internal/diagnostic"
	"xmlbind-generator/internal/match"
	"xmlbind-generator/internal/model"
)

// Discovery is the result of turning a type graph into a binding model.
type Discovery struct {
	Model     *model.Model
	Hierarchy *Hierarchy
	// Diagnostics holds tag and field problems found during discovery.
	// Model problems are reported by Model.Validate.
	Diagnostics diagnostic.Diagnostics
}

// Discover declares every exported struct of the given packages as a bound
// type and classifies its fields from their tags. With no paths every
// package of the graph is used.
func Discover(g *TypeGraph, pkgPaths ...string) *Discovery {
	if len(pkgPaths) == 0 {
		for p := range g.Packages {
			pkgPaths = append(pkgPaths, p)
		}
		slices.Sort(pkgPaths)
	}

	d := &Discovery{Hierarchy: NewHierarchy(g)}
	b := model.NewBuilder()

	for _, p := range pkgPaths {
		pkg, ok := g.Packages[p]
		if !ok {
			d.Diagnostics.AddError(diagnostic.CodeUnknownType,
				fmt.Sprintf("package %s was not loaded", p), "", "")
			continue
		}

		for _, id := range pkg.Types {
			t := g.GetType(id)
			if t == nil || t.Kind != TypeKindStruct {
				continue
			}

			d.declare(b, pkg, t)
		}
	}

	d.Model = b.Build()

	return d
}

func (d *Discovery) declare(b *model.Builder, pkg *PackageInfo, t *TypeInfo) {
	tb := b.Type(t.ID, xmlName(t))
	root := NewTypePath(t.ID.Name)

	ctor := constructorFor(pkg, t)
	if ctor != nil {
		tb.Constructor(ctor.Name, len(ctor.ParamNames()))
	}

	for i := range t.Fields {
		d.field(tb, t, ctor, &t.Fields[i], root.Field(t.Fields[i].Name))
	}
}

// constructorFor returns New<T> when t has unexported bound fields and its
// package declares that function returning exactly T.
func constructorFor(pkg *PackageInfo, t *TypeInfo) *FuncInfo {
	if !slices.ContainsFunc(t.Fields, func(f FieldInfo) bool { return !f.Exported }) {
		return nil
	}

	fn, ok := pkg.Funcs["New"+t.ID.Name]
	if !ok || !fn.Returns(t.GoType) {
		return nil
	}

	return fn
}

// memberAccess picks the access of f. Fields of constructed types become the
// parameter of the same normalized name, read back through a getter.
// Unexported fields of other types need a getter and a setter.
func memberAccess(owner *TypeInfo, ctor *FuncInfo, f *FieldInfo, tag XMLTag) (model.Access, error) {
	if ctor != nil {
		want := match.NormalizeIdent(f.Name)

		param := slices.IndexFunc(ctor.ParamNames(), func(p string) bool {
			return match.NormalizeIdent(p) == want
		})
		if param < 0 {
			return model.Access{}, fmt.Errorf("constructor %s has no parameter for %s", ctor.Name, f.Name)
		}

		getter, err := accessor(owner, tag.Getter, f.Name, "getter", (*MethodInfo).IsGetter)
		if err != nil {
			return model.Access{}, err
		}

		return model.ConstructorAccess(param, getter), nil
	}

	if f.Exported {
		return model.FieldAccess(f.Name), nil
	}

	getter, err := accessor(owner, tag.Getter, f.Name, "getter", (*MethodInfo).IsGetter)
	if err != nil {
		return model.Access{}, err
	}

	setter, err := accessor(owner, tag.Setter, "set_"+f.Name, "setter", (*MethodInfo).IsSetter)
	if err != nil {
		return model.Access{}, err
	}

	return model.MethodAccess(getter, setter), nil
}

// accessor resolves the method called name or, when name is empty, the one
// whose normalized name equals that of stem.
func accessor(owner *TypeInfo, name, stem, what string, fits func(*MethodInfo) bool) (string, error) {
	if name != "" {
		if m, ok := owner.Method(name); ok && fits(m) {
			return name, nil
		}

		return "", fmt.Errorf("%s is not a %s method of %s", name, what, owner.ID.Name)
	}

	want := match.NormalizeIdent(stem)

	for i := range owner.Methods {
		if m := &owner.Methods[i]; fits(m) && match.NormalizeIdent(m.Name) == want {
			return m.Name, nil
		}
	}

	return "", fmt.Errorf("%s has no %s method matching %s", owner.ID.Name, what, stem)
}

// xmlName returns the tag of an XMLName xml.Name field, or the decapitalized type name.
func xmlName(t *TypeInfo) string {
	for _, f := range t.Fields {
		if f.Name != "XMLName" {
			continue
		}

		if tag, err := f.XMLTag(); err == nil && tag.Name != "" {
			return tag.Name
		}
	}

	return common.Decapitalize(t.ID.Name)
}

func (d *Discovery) field(tb *model.TypeBuilder, owner *TypeInfo, ctor *FuncInfo, f *FieldInfo, path *TypePath) {
	if f.Name == "XMLName" {
		return
	}

	owned := owner.ID.String()

	tag, err := f.XMLTag()
	if err != nil {
		d.Diagnostics.AddError(diagnostic.CodeUnsupportedTag, err.Error(), owned, path.String())
		return
	}

	if tag.Skip {
		return
	}

	if f.Embedded {
		d.Diagnostics.AddWarning(diagnostic.CodeUnsupportedTag,
			"embedded fields are not bound", owned, path.String())
		return
	}

	access, err := memberAccess(owner, ctor, f, tag)
	if err != nil {
		d.Diagnostics.AddError(diagnostic.CodeInvalidField, err.Error(), owned, path.String())
		return
	}

	conv := f.Converter()

	opts := []model.FieldOption{model.WithMember(f.Name)}
	if len(tag.Path) > 0 {
		opts = append(opts, model.WithPath(tag.Path...))
	}
	if conv != "" {
		opts = append(opts, model.WithConverter(conv))
	}
	if tag.CData {
		opts = append(opts, model.WithCData())
	}
	if tag.OmitEmpty {
		opts = append(opts, model.WithOmitEmpty())
	}

	name := tag.Name
	if name == "" {
		name = common.Decapitalize(f.Name)
	}

	if poly, ok := f.Tag.Lookup("xmlpoly"); ok {
		d.polymorphic(tb, owner, f, poly, access, opts, path)
		return
	}

	unsupported := func(what string) {
		d.Diagnostics.AddError(diagnostic.CodeInvalidField,
			fmt.Sprintf("%s has unsupported type %s", what, TypeString(f.Type)), owned, path.String())
	}

	if f.Type.Kind == TypeKindSlice && conv == "" {
		item, ok := valueType(f.Type.ElemType)
		if !ok {
			unsupported("list")
			return
		}

		tb.List(name, item, access, opts...)

		return
	}

	vt, ok := valueType(f.Type)
	if !ok {
		unsupported("field")
		return
	}

	// Non-scalar attributes, text and properties need a converter.
	scalar := vt.IsScalar() || conv != ""

	switch {
	case tag.Attr:
		if !scalar {
			unsupported("attribute")
			return
		}
		tb.Attribute(name, vt, access, opts...)
	case tag.IsText():
		if !scalar {
			unsupported("text")
			return
		}
		tb.Text(vt, access, opts...)
	case scalar:
		tb.Property(name, vt, access, opts...)
	case bindable(f.Type):
		tb.Element(name, vt, access, opts...)
	default:
		unsupported("element")
	}
}

func (d *Discovery) polymorphic(tb *model.TypeBuilder, owner *TypeInfo, f *FieldInfo,
	poly string, access model.Access, opts []model.FieldOption, path *TypePath) {
	matchers, err := ParseMatchers(poly, owner.ID.PkgPath)
	if err != nil {
		d.Diagnostics.AddError(diagnostic.CodeUnsupportedTag, err.Error(), owner.ID.String(), path.String())
		return
	}

	t, list := f.Type, false
	if t.Kind == TypeKindSlice {
		t, list = t.ElemType, true
	}

	vt, ok := valueType(t)
	if !ok {
		d.Diagnostics.AddError(diagnostic.CodeInvalidField,
			fmt.Sprintf("polymorphic field has unsupported type %s", TypeString(f.Type)),
			owner.ID.String(), path.String())
		return
	}

	if list {
		tb.PolymorphicList(vt, access, matchers, opts...)
		return
	}

	tb.Polymorphic(vt, access, matchers, opts...)
}

// bindable reports whether a child element can hold a value of t.
func bindable(t *TypeInfo) bool {
	if t.Kind == TypeKindPointer {
		t = t.ElemType
	}

	return t.Kind == TypeKindStruct || t.Kind == TypeKindInterface
}

// valueType maps a field type to a model value type. Pointers become
// optional, the empty interface is model.Any and named types keep their id.
func valueType(t *TypeInfo) (model.ValueType, bool) {
	if t == nil {
		return model.ValueType{}, false
	}

	switch t.Kind {
	case TypeKindPointer:
		vt, ok := valueType(t.ElemType)
		if !ok || vt.Optional {
			return model.ValueType{}, false
		}

		vt.Optional = true

		return vt, true

	case TypeKindBasic:
		basic, ok := t.GoType.(*types.Basic)
		if !ok {
			return model.ValueType{}, false
		}

		id := model.Builtin(basic.Name())
		if _, ok := id.Scalar(); !ok {
			return model.ValueType{}, false
		}

		return model.ValueType{ID: id}, true

	case TypeKindInterface:
		if t.IsNamed() {
			return model.ValueType{ID: t.ID}, true
		}

		if iface, ok := t.GoType.Underlying().(*types.Interface); ok && iface.Empty() {
			return model.ValueType{ID: model.Any}, true
		}

		return model.ValueType{}, false

	case TypeKindStruct, TypeKindAlias, TypeKindExternal:
		if !t.IsNamed() {
			return model.ValueType{}, false
		}

		return model.ValueType{ID: t.ID}, true

	default:
		return model.ValueType{}, false
	}
}

// Hierarchy answers subtype questions with go/types: a type is a subtype
// of every interface it or its pointer implements.
type Hierarchy struct {
	graph *TypeGraph
}

var _ model.Hierarchy = (*Hierarchy)(nil)

// NewHierarchy creates a Hierarchy over the types of g.
func NewHierarchy(g *TypeGraph) *Hierarchy {
	return &Hierarchy{graph: g}
}

// IsSubtype implements model.Hierarchy.
func (h *Hierarchy) IsSubtype(sub, super model.TypeID) bool {
	if sub == super {
		return false
	}

	if super.IsAny() {
		return true
	}

	st, pt := h.graph.GetType(sub), h.graph.GetType(super)
	if st == nil || pt == nil {
		return false
	}

	iface, ok := pt.GoType.Underlying().(*types.Interface)
	if !ok {
		return false
	}

	return types.Implements(st.GoType, iface) || types.Implements(types.NewPointer(st.GoType), iface)
}
