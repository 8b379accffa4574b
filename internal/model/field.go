package model

import "xmlbind-generator/internal/common"

// FieldID indexes Model.Fields.
type FieldID int

// ElementID indexes Model.Elements.
type ElementID int

// NoField and NoElement mark unset references.
const (
	NoField   FieldID   = -1
	NoElement ElementID = -1
)

// FieldKind is the variant of a field descriptor.
type FieldKind int

const (
	// FieldAttribute maps to one XML attribute.
	FieldAttribute FieldKind = iota
	// FieldProperty maps to the text content of a child element.
	FieldProperty
	// FieldText maps to the text content of the element itself.
	FieldText
	// FieldElement maps to a single nested child element delegated to a type adapter.
	FieldElement
	// FieldList is a sequence of child elements of the same name.
	FieldList
	// FieldPolymorphic groups substitutions for a single polymorphic child. It never
	// generates code itself.
	FieldPolymorphic
	// FieldPolymorphicList groups substitutions for a polymorphic sequence.
	FieldPolymorphicList
	// FieldSubstitution is one concrete variant of a FieldPolymorphic.
	FieldSubstitution
	// FieldSubstitutionList is one concrete variant of a FieldPolymorphicList.
	FieldSubstitutionList
)

// String returns a human-readable field kind name.
func (k FieldKind) String() string {
	switch k {
	case FieldAttribute:
		return "attribute"
	case FieldProperty:
		return "property"
	case FieldText:
		return "text"
	case FieldElement:
		return "element"
	case FieldList:
		return "list"
	case FieldPolymorphic:
		return "polymorphic"
	case FieldPolymorphicList:
		return "polymorphic_list"
	case FieldSubstitution:
		return "substitution"
	case FieldSubstitutionList:
		return "substitution_list"
	default:
		return common.UnknownStr
	}
}

// IsPolymorphic reports whether the kind is a grouping placeholder for substitutions.
func (k FieldKind) IsPolymorphic() bool {
	return k == FieldPolymorphic || k == FieldPolymorphicList
}

// IsSequence reports whether the underlying value is a sequence.
func (k FieldKind) IsSequence() bool {
	return k == FieldList || k == FieldPolymorphicList || k == FieldSubstitutionList
}

// Matcher binds an XML tag name to one concrete type of a polymorphic field.
type Matcher struct {
	Tag  string
	Type TypeID
}

// Field is a single field descriptor.
type Field struct {
	ID   FieldID
	Kind FieldKind
	// Name is the XML tag or attribute name actually used.
	Name string
	// Member is the Go member the field was discovered from; used in messages.
	Member string
	// Type is the value type. For sequences it is the item type; for polymorphic
	// fields the declared static type; for substitutions the concrete type.
	Type      ValueType
	Access    Access
	Converter string
	CData     bool
	// OmitEmpty treats the zero value of a non-nullable type as absent.
	OmitEmpty bool

	Matchers      []Matcher
	Substitutions []FieldID
	// Origin is the polymorphic field a substitution was created from.
	Origin FieldID

	Owner  TypeID
	Parent ElementID
}

// Nullable reports whether the field needs a presence test before it is written.
// Pointers, sequences, interfaces and omitempty members qualify; plain values of a
// declared struct type are always present.
func (f *Field) Nullable() bool {
	return f.Type.Optional || f.Type.ID.IsAny() || f.OmitEmpty ||
		f.Kind.IsSequence() || f.Kind.IsPolymorphic()
}

// IsSubstitution reports whether the field was produced by linking.
func (f *Field) IsSubstitution() bool {
	return f.Kind == FieldSubstitution || f.Kind == FieldSubstitutionList
}
