package mapping

import (
	"strings"

	"xmlbind-generator/internal/common"
	"xmlbind-generator/internal/model"
)

// ResolveValueType resolves a type name like:
// - "string", "*int64", "any" (builtin)
// - "example/zoo.Dog" (qualified)
// - "Dog" (relative to pkg).
func ResolveValueType(name, pkg string) model.ValueType {
	optional := strings.HasPrefix(name, "*")

	return model.ValueType{
		ID:       ResolveTypeID(strings.TrimPrefix(name, "*"), pkg),
		Optional: optional,
	}
}

// ResolveTypeID resolves a type name without the optional marker.
func ResolveTypeID(name, pkg string) model.TypeID {
	if name == "" {
		return model.TypeID{}
	}

	if _, ok := model.ScalarKindOf(name); ok {
		return model.Builtin(name)
	}

	if id := model.Builtin(name); id.IsAny() {
		return model.Any
	}

	if strings.Contains(name, ".") {
		return model.ParseTypeID(name)
	}

	return model.TypeID{PkgPath: pkg, Name: name}
}

// defaultXMLName is the element name of a type declared without xml_name.
func defaultXMLName(typeName string) string {
	name := strings.TrimPrefix(typeName, "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}

	return common.Decapitalize(name)
}
