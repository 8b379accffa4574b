package mapping

import (
	"fmt"
	"slices"
	"strings"

	"xmlbind-generator/internal/common"
	"xmlbind-generator/internal/model"
)

// MappingFile represents the root of a YAML field model definition.
type MappingFile struct {
	// Version of the mapping schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Package is the import path unqualified type names resolve against.
	Package string `yaml:"package,omitempty"`

	// PrimitiveConverters lists the scalar kinds read and written through the
	// built-in type converters instead of typed accessors.
	PrimitiveConverters StringOrArray `yaml:"primitive_converters,omitempty"`

	// Types is the list of declared types.
	Types []TypeMapping `yaml:"types"`

	// Converters defines the named custom converters fields may refer to.
	Converters []ConverterDef `yaml:"converters,omitempty"`
}

// TypeMapping declares one type and its fields.
type TypeMapping struct {
	// Type is the type name (e.g., "Feed" or "example/rss.Feed").
	Type string `yaml:"type"`

	// XMLName is the default element name. Defaults to the decapitalized type name.
	XMLName string `yaml:"xml_name,omitempty"`

	// Extends lists the direct supertypes of the type, used to check and order
	// polymorphic matchers.
	Extends StringOrArray `yaml:"extends,omitempty"`

	// Constructor names the function building the value from parameter fields.
	Constructor string `yaml:"constructor,omitempty"`

	// Fields lists the mapped members in declaration order.
	Fields []FieldMapping `yaml:"fields,omitempty"`
}

// FieldKind is the YAML spelling of a field kind.
type FieldKind string

const (
	KindAttribute       FieldKind = "attribute"
	KindProperty        FieldKind = "property"
	KindText            FieldKind = "text"
	KindElement         FieldKind = "element"
	KindList            FieldKind = "list"
	KindPolymorphic     FieldKind = "polymorphic"
	KindPolymorphicList FieldKind = "polymorphic_list"
)

var fieldKinds = map[FieldKind]model.FieldKind{
	KindAttribute:       model.FieldAttribute,
	KindProperty:        model.FieldProperty,
	KindText:            model.FieldText,
	KindElement:         model.FieldElement,
	KindList:            model.FieldList,
	KindPolymorphic:     model.FieldPolymorphic,
	KindPolymorphicList: model.FieldPolymorphicList,
}

// IsValid returns true if the kind is a recognized value.
func (k FieldKind) IsValid() bool {
	_, ok := fieldKinds[k]
	return ok
}

// Model returns the model field kind.
func (k FieldKind) Model() model.FieldKind {
	return fieldKinds[k]
}

// IsPolymorphic reports whether the kind takes matchers.
func (k FieldKind) IsPolymorphic() bool {
	return k == KindPolymorphic || k == KindPolymorphicList
}

// FieldMapping maps one member.
type FieldMapping struct {
	// Member is the Go member name.
	Member string `yaml:"member"`

	Kind FieldKind `yaml:"kind"`

	// Name is the XML name. Defaults to the decapitalized member name; unused for
	// text and polymorphic fields.
	Name string `yaml:"name,omitempty"`

	// Type is the value type, the item type for lists and the declared static type
	// for polymorphic fields. "*" marks an optional value.
	Type string `yaml:"type"`

	// Path places the field below placeholder elements: "channel/meta" or a list.
	Path StringOrArray `yaml:"path,omitempty"`

	Converter string `yaml:"converter,omitempty"`
	CData     bool   `yaml:"cdata,omitempty"`
	OmitEmpty bool   `yaml:"omitempty,omitempty"`

	Getter string `yaml:"getter,omitempty"`
	Setter string `yaml:"setter,omitempty"`
	// Param is the constructor parameter index of the member.
	Param *int `yaml:"param,omitempty"`

	// Matchers maps XML tags to concrete types, in declaration order.
	Matchers MatcherList `yaml:"matchers,omitempty"`
}

// PathSegments returns the placeholder path, splitting "a/b" forms.
func (f *FieldMapping) PathSegments() []string {
	var out []string

	for _, p := range f.Path {
		for seg := range strings.SplitSeq(p, "/") {
			if seg != "" {
				out = append(out, seg)
			}
		}
	}

	return out
}

// XMLName returns the effective XML name of the field.
func (f *FieldMapping) XMLName() string {
	if f.Name != "" || f.Kind == KindText || f.Kind.IsPolymorphic() {
		return f.Name
	}

	return common.Decapitalize(f.Member)
}

// Access returns the member access strategy.
func (f *FieldMapping) Access() model.Access {
	switch {
	case f.Param != nil:
		getter := f.Getter
		if getter == "" {
			getter = f.Member
		}

		return model.ConstructorAccess(*f.Param, getter)
	case f.Getter != "" || f.Setter != "":
		return model.MethodAccess(f.Getter, f.Setter)
	default:
		return model.FieldAccess(f.Member)
	}
}

// Matcher binds a tag to a type name.
type Matcher struct {
	Tag  string `yaml:"tag"`
	Type string `yaml:"type"`
}

// MatcherList is an ordered list of matchers that can be unmarshaled from:
//   - A mapping: {dog: Dog, cat: Cat}
//   - A sequence: [{tag: dog, type: Dog}, {tag: cat, type: Cat}]
type MatcherList []Matcher

// Tags returns the matcher tags in order.
func (m MatcherList) Tags() []string {
	tags := make([]string, len(m))
	for i, mt := range m {
		tags[i] = mt.Tag
	}

	return tags
}

// StringOrArray is a string list that can be unmarshaled from a single string or an
// array of strings.
type StringOrArray []string

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// ConverterDef declares a named custom converter.
type ConverterDef struct {
	// Name is the name fields refer to.
	Name string `yaml:"name"`

	// Type is the Go value type the converter produces.
	Type string `yaml:"type"`

	// Read parses the raw string: func(string) (T, error).
	Read string `yaml:"read"`

	// Write formats a value: func(T) (string, error).
	Write string `yaml:"write"`

	// Package is the optional import path of the functions.
	Package string `yaml:"package,omitempty"`
}

// String describes the converter for messages.
func (c ConverterDef) String() string {
	return fmt.Sprintf("%s(%s)", c.Name, c.Type)
}
