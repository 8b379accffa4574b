package analyze

import (
	"go/types"
	"reflect"

	"xmlbind-generator/internal/common"
	"xmlbind-generator/internal/model"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID = model.TypeID

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindAlias              // named type wrapping another
	TypeKindExternal           // external/opaque type (e.g., time.Time)
	TypeKindInterface          // interface type
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	case TypeKindInterface:
		return "interface"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID      // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind    // Kind of type
	Underlying *TypeInfo   // For named types, the underlying type
	ElemType   *TypeInfo   // For pointers and slices, the element type
	Fields     []FieldInfo // For structs, the list of fields
	Methods    []MethodInfo
	GoType     types.Type // The original go/types.Type
}

// Method returns the exported method with the given name.
func (t *TypeInfo) Method(name string) (*MethodInfo, bool) {
	for i := range t.Methods {
		if t.Methods[i].Name == name {
			return &t.Methods[i], true
		}
	}

	return nil, false
}

// MethodInfo describes an exported method of *T, which includes the value
// receiver methods of T.
type MethodInfo struct {
	Name        string
	Signature   *types.Signature
	PointerRecv bool
}

// IsGetter reports whether the method takes nothing and returns one value.
func (m *MethodInfo) IsGetter() bool {
	return m.Signature.Params().Len() == 0 && m.Signature.Results().Len() == 1
}

// IsSetter reports whether the method takes one value and returns nothing.
func (m *MethodInfo) IsSetter() bool {
	return m.Signature.Params().Len() == 1 && m.Signature.Results().Len() == 0
}

// FuncInfo describes an exported package-level function.
type FuncInfo struct {
	Name      string
	Signature *types.Signature
}

// ParamNames returns the declared parameter names in order.
func (f *FuncInfo) ParamNames() []string {
	params := f.Signature.Params()

	names := make([]string, params.Len())
	for i := range names {
		names[i] = params.At(i).Name()
	}

	return names
}

// Returns reports whether the function returns exactly one value of type t.
func (f *FuncInfo) Returns(t types.Type) bool {
	res := f.Signature.Results()
	return res.Len() == 1 && types.Identical(res.At(0).Type(), t)
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// BindTagKey carries the binding of unexported fields. It shares the grammar of
// the xml tag and adds the get= and set= accessor options; vet rejects xml
// tags on unexported fields.
const BindTagKey = "xmlbind"

// XMLTag returns the parsed binding tag of the field: the xml tag for exported
// fields and the xmlbind tag for unexported ones.
func (f *FieldInfo) XMLTag() (XMLTag, error) {
	if !f.Exported {
		return ParseBindTag(f.Tag.Get(BindTagKey))
	}

	return ParseXMLTag(f.Tag.Get("xml"))
}

// Converter returns the custom converter name of the field, if any.
func (f *FieldInfo) Converter() string {
	return f.Tag.Get("xmlconv")
}

// HasTag returns true if the field has the specified tag.
func (f *FieldInfo) HasTag(key string) bool {
	_, ok := f.Tag.Lookup(key)
	return ok
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package, sorted by name
	Funcs map[string]*FuncInfo
}
