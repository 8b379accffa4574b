package model

import (
	"errors"
	"fmt"
	"strings"

	"xmlbind-generator/internal/diagnostic"
)

// ErrInvalidModel indicates the field model failed validation.
var ErrInvalidModel = errors.New("invalid field model")

// ErrAlreadyLinked indicates Link was called on a linked model.
var ErrAlreadyLinked = errors.New("model already linked")

// TypeDecl is a declared type being compiled.
type TypeDecl struct {
	ID TypeID
	// XMLName is the default element name used when writing the type.
	XMLName string
	Root    ElementID
	// Constructor names the function building the value from constructor parameters.
	// Empty when the type is populated member by member.
	Constructor string
	Params      int
}

// UsesConstructor reports whether fields are collected into constructor parameters.
func (t *TypeDecl) UsesConstructor() bool {
	return t.Constructor != ""
}

// Model is the flat arena holding every type, field and element of a compilation run.
type Model struct {
	Types    []TypeDecl
	Fields   []Field
	Elements []Element

	typeIndex   map[TypeID]int
	linked      bool
	diagnostics diagnostic.Diagnostics
}

// Type returns the declaration of id.
func (m *Model) Type(id TypeID) (*TypeDecl, bool) {
	i, ok := m.typeIndex[id]
	if !ok {
		return nil, false
	}

	return &m.Types[i], true
}

// Field returns the field with the given id.
func (m *Model) Field(id FieldID) *Field {
	return &m.Fields[id]
}

// Element returns the element with the given id.
func (m *Model) Element(id ElementID) *Element {
	return &m.Elements[id]
}

// Root returns the root element of a declared type.
func (m *Model) Root(t *TypeDecl) *Element {
	return m.Element(t.Root)
}

// TypeIDs returns the declared types in declaration order.
func (m *Model) TypeIDs() []TypeID {
	ids := make([]TypeID, 0, len(m.Types))
	for _, t := range m.Types {
		ids = append(ids, t.ID)
	}

	return ids
}

// Linked reports whether the linking pass has run.
func (m *Model) Linked() bool {
	return m.linked
}

// ElementPath renders the XML path of an element relative to its type root.
func (m *Model) ElementPath(id ElementID) string {
	var segments []string

	for id != NoElement {
		el := m.Element(id)
		segments = append([]string{el.Name}, segments...)
		id = el.Parent
	}

	return strings.Join(segments, "/")
}

// Builder constructs a Model. Configuration errors such as duplicate sibling names are
// recorded as diagnostics and reported by Model.Validate.
type Builder struct {
	m *Model
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{m: &Model{typeIndex: make(map[TypeID]int)}}
}

// Type declares a type with the given default element name.
func (b *Builder) Type(id TypeID, xmlName string) *TypeBuilder {
	if i, ok := b.m.typeIndex[id]; ok {
		b.m.diagnostics.AddError(diagnostic.CodeDuplicateName,
			fmt.Sprintf("type %s declared twice", id), id.String(), "")

		return &TypeBuilder{b: b, decl: i}
	}

	root := b.newElement(xmlName, id, NoElement)
	b.m.typeIndex[id] = len(b.m.Types)
	b.m.Types = append(b.m.Types, TypeDecl{ID: id, XMLName: xmlName, Root: root})

	return &TypeBuilder{b: b, decl: len(b.m.Types) - 1}
}

// Build returns the constructed model. The builder must not be used afterwards.
func (b *Builder) Build() *Model {
	m := b.m
	b.m = nil

	return m
}

func (b *Builder) newElement(name string, owner TypeID, parent ElementID) ElementID {
	id := ElementID(len(b.m.Elements))
	b.m.Elements = append(b.m.Elements, Element{
		ID:     id,
		Name:   name,
		Owner:  owner,
		Parent: parent,
		Text:   NoField,
	})

	return id
}

// TypeBuilder adds fields to one declared type.
type TypeBuilder struct {
	b    *Builder
	decl int
}

// FieldOption customizes a field while it is declared.
type FieldOption func(*fieldSpec)

type fieldSpec struct {
	path []string
	f    Field
}

// WithPath places the field below nested placeholder elements, e.g. "channel", "meta".
func WithPath(segments ...string) FieldOption {
	return func(s *fieldSpec) { s.path = append(s.path, segments...) }
}

// WithConverter binds a named custom converter.
func WithConverter(name string) FieldOption {
	return func(s *fieldSpec) { s.f.Converter = name }
}

// WithCData writes string text content as a CDATA section.
func WithCData() FieldOption {
	return func(s *fieldSpec) { s.f.CData = true }
}

// WithOmitEmpty skips zero values of non-nullable types on write.
func WithOmitEmpty() FieldOption {
	return func(s *fieldSpec) { s.f.OmitEmpty = true }
}

// WithMember records the Go member the field was discovered from.
func WithMember(name string) FieldOption {
	return func(s *fieldSpec) { s.f.Member = name }
}

// ID returns the declared type's id.
func (t *TypeBuilder) ID() TypeID {
	return t.b.m.Types[t.decl].ID
}

// Constructor makes the type build its values through fn with params parameters.
func (t *TypeBuilder) Constructor(fn string, params int) *TypeBuilder {
	d := &t.b.m.Types[t.decl]
	d.Constructor = fn
	d.Params = params

	return t
}

// Attribute declares an attribute field.
func (t *TypeBuilder) Attribute(name string, vt ValueType, access Access, opts ...FieldOption) FieldID {
	return t.add(Field{Kind: FieldAttribute, Name: name, Type: vt, Access: access}, opts)
}

// Property declares a child element whose text content is the value.
func (t *TypeBuilder) Property(name string, vt ValueType, access Access, opts ...FieldOption) FieldID {
	return t.add(Field{Kind: FieldProperty, Name: name, Type: vt, Access: access}, opts)
}

// Text declares the element's own text content.
func (t *TypeBuilder) Text(vt ValueType, access Access, opts ...FieldOption) FieldID {
	return t.add(Field{Kind: FieldText, Type: vt, Access: access}, opts)
}

// Element declares a nested child element delegated to the type adapter of vt.
func (t *TypeBuilder) Element(name string, vt ValueType, access Access, opts ...FieldOption) FieldID {
	return t.add(Field{Kind: FieldElement, Name: name, Type: vt, Access: access}, opts)
}

// List declares a sequence of child elements named name with the given item type.
func (t *TypeBuilder) List(name string, item ValueType, access Access, opts ...FieldOption) FieldID {
	return t.add(Field{Kind: FieldList, Name: name, Type: item, Access: access}, opts)
}

// Polymorphic declares a single polymorphic child with the given matchers.
func (t *TypeBuilder) Polymorphic(static ValueType, access Access, matchers []Matcher, opts ...FieldOption) FieldID {
	return t.add(Field{
		Kind:     FieldPolymorphic,
		Type:     static,
		Access:   access,
		Matchers: append([]Matcher(nil), matchers...),
	}, opts)
}

// PolymorphicList declares a polymorphic sequence; static is the declared item type.
func (t *TypeBuilder) PolymorphicList(static ValueType, access Access, matchers []Matcher, opts ...FieldOption) FieldID {
	return t.add(Field{
		Kind:     FieldPolymorphicList,
		Type:     static,
		Access:   access,
		Matchers: append([]Matcher(nil), matchers...),
	}, opts)
}

func (t *TypeBuilder) add(f Field, opts []FieldOption) FieldID {
	spec := fieldSpec{f: f}
	for _, opt := range opts {
		opt(&spec)
	}

	m := t.b.m
	decl := m.Types[t.decl]

	f = spec.f
	f.ID = FieldID(len(m.Fields))
	f.Owner = decl.ID
	f.Origin = NoField
	f.Parent = t.placeholder(decl.Root, spec.path)

	if f.Member == "" {
		f.Member = f.Access.String()
	}

	m.Fields = append(m.Fields, f)
	t.attach(m.Field(f.ID))

	return f.ID
}

// placeholder walks (creating where missing) the placeholder elements of path below root.
func (t *TypeBuilder) placeholder(root ElementID, path []string) ElementID {
	m := t.b.m
	current := root

	for _, segment := range path {
		el := m.Element(current)
		if child, ok := el.Children.Get(segment); ok {
			if child.IsPlaceholder() {
				current = child.Placeholder
				continue
			}

			m.diagnostics.AddError(diagnostic.CodeDuplicateName,
				fmt.Sprintf("path segment %q collides with a field of the same name", segment),
				el.Owner.String(), m.ElementPath(current))

			return current
		}

		next := t.b.newElement(segment, el.Owner, current)
		el = m.Element(current)
		el.Children.Put(segment, Child{Field: NoField, Placeholder: next})
		el.Members = append(el.Members, Member{Field: NoField, Placeholder: next})
		current = next
	}

	return current
}

func (t *TypeBuilder) attach(f *Field) {
	m := t.b.m
	el := m.Element(f.Parent)
	path := m.ElementPath(el.ID)

	duplicate := func(what string) {
		m.diagnostics.AddError(diagnostic.CodeDuplicateName,
			fmt.Sprintf("duplicate %s %q (member %s)", what, f.Name, f.Member),
			f.Owner.String(), path)
	}

	switch f.Kind {
	case FieldAttribute:
		if !el.Attributes.Put(f.Name, f.ID) {
			duplicate("attribute")
		}
	case FieldText:
		if el.IsPlaceholder() {
			m.diagnostics.AddError(diagnostic.CodeUnsupportedTag,
				fmt.Sprintf("text content of member %s cannot be placed below a path", f.Member),
				f.Owner.String(), path)

			return
		}

		if el.Text != NoField {
			duplicate("text content")
			return
		}

		el.Text = f.ID
	case FieldPolymorphic, FieldPolymorphicList:
		// Substitutions are registered as children by Link.
		el.Members = append(el.Members, Member{Field: f.ID, Placeholder: NoElement})
	default:
		if !el.Children.Put(f.Name, Child{Field: f.ID, Placeholder: NoElement}) {
			duplicate("element")
			return
		}

		el.Members = append(el.Members, Member{Field: f.ID, Placeholder: NoElement})
	}
}
