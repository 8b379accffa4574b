package analyze

import (
	"strconv"
	"strings"
)

// TypePath locates a struct member for diagnostics: "Feed", "Feed.Items",
// "Item.Media[]". Paths are immutable; every step returns a new one.
type TypePath struct {
	parts []string
}

// NewTypePath starts a path at the type named root.
func NewTypePath(root string) *TypePath {
	return &TypePath{parts: []string{root}}
}

// Field descends into the member called name.
func (p *TypePath) Field(name string) *TypePath {
	return p.with(name)
}

// Slice marks the elements of the current member.
func (p *TypePath) Slice() *TypePath {
	if len(p.parts) == 0 {
		return &TypePath{parts: []string{"[]"}}
	}

	last := len(p.parts) - 1
	out := p.with()
	out.parts[last] += "[]"

	return out
}

func (p *TypePath) with(extra ...string) *TypePath {
	parts := make([]string, 0, len(p.parts)+len(extra))
	parts = append(parts, p.parts...)

	return &TypePath{parts: append(parts, extra...)}
}

func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// TypeString renders t the way it appears in the declaring package: local
// named types unqualified, foreign ones with their import path.
func TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeKindPointer:
		return "*" + elemString(t)
	case TypeKindSlice:
		return "[]" + elemString(t)
	case TypeKindArray:
		return "[" + arrayLen(t) + "]" + elemString(t)
	case TypeKindExternal:
		if t.IsNamed() {
			return t.ID.String()
		}
	case TypeKindStruct, TypeKindInterface, TypeKindAlias:
		if t.IsNamed() {
			return t.ID.Name
		}

		if t.Kind == TypeKindAlias {
			return TypeString(t.Underlying)
		}
	}

	if t.GoType == nil {
		return "<" + t.Kind.String() + ">"
	}

	return t.GoType.String()
}

func elemString(t *TypeInfo) string {
	if t.ElemType == nil {
		return "<unknown>"
	}

	return TypeString(t.ElemType)
}

func arrayLen(t *TypeInfo) string {
	if a, ok := t.GoType.(interface{ Len() int64 }); ok {
		return strconv.FormatInt(a.Len(), 10)
	}

	return ""
}
