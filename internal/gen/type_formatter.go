package gen

import (
	"maps"
	"slices"
	"strings"

	"xmlbind-generator/internal/common"
	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// addImport records pkgPath and returns the alias its identifiers are qualified with.
func (f *file) addImport(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	if spec, ok := f.imports[pkgPath]; ok {
		return spec.Alias
	}

	alias := common.PkgAlias(pkgPath)
	f.imports[pkgPath] = importSpec{Alias: alias, Path: pkgPath}

	return alias
}

// sortedImports returns the recorded imports ordered by path.
func (f *file) sortedImports() []importSpec {
	paths := slices.Sorted(maps.Keys(f.imports))

	out := make([]importSpec, 0, len(paths))
	for _, p := range paths {
		spec := f.imports[p]

		// Drop redundant aliases
		if spec.Alias == common.PkgAlias(p) {
			spec.Alias = ""
		}

		out = append(out, spec)
	}

	return out
}

// qualified spells a package-level identifier, qualified unless it lives in the
// generated package.
func (f *file) qualified(pkgPath, name string) string {
	if pkgPath == "" || pkgPath == f.g.config.PackagePath {
		return name
	}

	return f.addImport(pkgPath) + "." + name
}

// typeName spells a type id (e.g., "string", "rss.Feed", "any").
func (f *file) typeName(id model.TypeID) string {
	if id.IsAny() {
		return "any"
	}

	return f.qualified(id.PkgPath, id.Name)
}

// valueType spells a value type (e.g., "*string", "*rss.Image").
func (f *file) valueType(vt model.ValueType) string {
	if vt.Optional {
		return "*" + f.typeName(vt.ID)
	}

	return f.typeName(vt.ID)
}

// tempType spells the type of a constructor temporary.
func (f *file) tempType(t ir.Temp) string {
	if t.Sequence {
		return "[]" + f.valueType(t.Type)
	}

	return f.valueType(t.Type)
}

// funcName spells a constructor function. Unqualified names live in the package
// of the constructed type.
func (f *file) funcName(fn string, owner model.TypeID) string {
	if i := strings.LastIndex(fn, "."); i >= 0 {
		return f.qualified(fn[:i], fn[i+1:])
	}

	return f.qualified(owner.PkgPath, fn)
}
