package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"reflect"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	// Dir is the directory patterns are resolved from. Empty means the
	// current directory.
	Dir string
	// Tests also loads the test variants of the packages.
	Tests bool

	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),
	}
}

// LoadPackages loads the packages matching patterns (for example
// "./examples/rss") into the type graph. Every package error is reported.
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode:  LoadMode,
		Dir:   a.Dir,
		Tests: a.Tests,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	// All roots are registered first: a type of a loaded package is never external.
	for _, pkg := range pkgs {
		a.graph.Packages[pkg.PkgPath] = &PackageInfo{
			Path:  pkg.PkgPath,
			Name:  pkg.Name,
			Funcs: make(map[string]*FuncInfo),
		}
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// processPackage records the exported named types and functions of pkg.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	info := a.graph.Packages[pkg.PkgPath]
	scope := pkg.Types.Scope()

	for _, name := range scope.Names() {
		switch obj := scope.Lookup(name).(type) {
		case *types.TypeName:
			// Aliases are registered under the name of the aliased type.
			if !obj.Exported() || obj.IsAlias() {
				continue
			}

			id := TypeID{PkgPath: pkg.PkgPath, Name: name}

			t := a.analyzeType(obj.Type())
			t.ID = id

			a.graph.Types[id] = t
			info.Types = append(info.Types, id)

		case *types.Func:
			if obj.Exported() {
				info.Funcs[name] = &FuncInfo{Name: name, Signature: obj.Signature()}
			}
		}
	}
}

// analyzeType converts t into a TypeInfo. Recursive types resolve through the cache.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	t = types.Unalias(t)

	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{GoType: t}
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)
	case *types.Basic:
		info.Kind = TypeKindBasic
	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())
	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())
	case *types.Array:
		info.Kind = TypeKindArray
		info.ElemType = a.analyzeType(tt.Elem())
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)
	case *types.Interface:
		info.Kind = TypeKindInterface
	default:
		// Maps, channels and funcs can't be bound.
		info.Kind = TypeKindUnknown
	}

	return info
}

func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()

	// Universe types such as error carry no package.
	if obj.Pkg() == nil {
		info.ID = TypeID{Name: obj.Name()}
		info.Kind = TypeKindExternal

		return
	}

	info.ID = TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}

	if a.isExternalPackage(obj.Pkg().Path()) {
		// Foreign structs such as time.Time are opaque values bound through converters.
		if _, isIface := named.Underlying().(*types.Interface); !isIface {
			info.Kind = TypeKindExternal
			return
		}
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		info.Methods = methods(named)
		a.analyzeStructFields(ut, info)
	case *types.Interface:
		info.Kind = TypeKindInterface
	default:
		// Named scalars such as `type Status string`.
		info.Kind = TypeKindAlias
		info.Underlying = a.analyzeType(ut)
		info.Methods = methods(named)
	}
}

// methods lists the exported methods callable on *named.
func methods(named *types.Named) []MethodInfo {
	mset := types.NewMethodSet(types.NewPointer(named))

	var out []MethodInfo

	for i := range mset.Len() {
		fn, ok := mset.At(i).Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}

		sig := fn.Signature()
		_, ptr := sig.Recv().Type().(*types.Pointer)

		out = append(out, MethodInfo{Name: fn.Name(), Signature: sig, PointerRecv: ptr})
	}

	return out
}

// isExternalPackage returns true if the package is not in our analyzed set.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	_, ok := a.graph.Packages[pkgPath]
	return !ok
}

// analyzeStructFields records the exported fields of st and the unexported
// ones carrying an xmlbind tag.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))

		if !field.Exported() {
			if _, ok := tag.Lookup(BindTagKey); !ok {
				continue
			}
		}

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     a.analyzeType(field.Type()),
			Tag:      tag,
			Embedded: field.Embedded(),
			Index:    i,
		})
	}
}

// GetStruct returns the struct type pkgPath.typeName, for example
// GetStruct("xmlbind-generator/examples/rss", "Feed").
func (a *Analyzer) GetStruct(pkgPath, typeName string) (*TypeInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}

	info := a.graph.GetType(id)
	if info == nil {
		return nil, fmt.Errorf("type %s not found", id)
	}

	if info.Kind != TypeKindStruct {
		return nil, fmt.Errorf("type %s is not a struct (kind: %s)", id, info.Kind)
	}

	return info, nil
}
