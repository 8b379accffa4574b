package model

import "strings"

// TypeID uniquely identifies a type by its package path and name.
// Scalars and builtin interfaces have an empty PkgPath.
type TypeID struct {
	PkgPath string // e.g., "xmlbind-generator/examples/rss"
	Name    string // e.g., "Feed"
}

// Any is the universal static type of a polymorphic field.
var Any = TypeID{Name: "any"}

// Builtin returns the TypeID of a builtin type such as "string" or "int64".
func Builtin(name string) TypeID {
	return TypeID{Name: name}
}

// ParseTypeID parses "path/to/pkg.Name" or a builtin name.
func ParseTypeID(s string) TypeID {
	i := strings.LastIndex(s, ".")
	if i < 0 {
		return TypeID{Name: s}
	}

	return TypeID{PkgPath: s[:i], Name: s[i+1:]}
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// IsZero reports whether t is unset.
func (t TypeID) IsZero() bool {
	return t.Name == ""
}

// IsAny reports whether t is the universal supertype.
func (t TypeID) IsAny() bool {
	return t.PkgPath == "" && (t.Name == "any" || t.Name == "interface{}")
}

// Scalar returns the scalar kind of t, if t is a builtin scalar spelling.
func (t TypeID) Scalar() (ScalarKind, bool) {
	if t.PkgPath != "" {
		return KindInvalid, false
	}

	return ScalarKindOf(t.Name)
}

// ValueType is the immutable value-type descriptor of a field.
type ValueType struct {
	ID TypeID
	// Optional is the boxed (pointer) spelling: the value may be absent.
	Optional bool
}

// Scalar returns the scalar kind of the value type, or KindInvalid for user types.
func (v ValueType) Scalar() ScalarKind {
	k, _ := v.ID.Scalar()
	return k
}

// IsScalar reports whether the value type is one of the primitive-like kinds.
func (v ValueType) IsScalar() bool {
	return v.Scalar() != KindInvalid
}

// Nullable reports whether a value of this type can be absent. Non-optional scalars
// are the only non-nullable values.
func (v ValueType) Nullable() bool {
	return v.Optional || !v.IsScalar()
}

// String renders the value type the way Go spells it.
func (v ValueType) String() string {
	if v.Optional {
		return "*" + v.ID.String()
	}

	return v.ID.String()
}
