package gen

import (
	"bytes"
	"fmt"
	"strings"

	"xmlbind-generator/internal/common"
	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
)

// templateData holds all data needed for the adapter template.
type templateData struct {
	PackageName      string
	Filename         string
	Imports          []importSpec
	GenerateComments bool

	TypeName string
	XMLName  string
	Adapter  string
	// ValueType is the bound type; RecvType is the type read into, which is the
	// constructor holder for constructed types.
	ValueType string
	RecvType  string
	Recv      string
	Holder    string

	BindersVar  string
	Binders     []binderRef
	BinderFuncs []string

	ReadBody       string
	Construct      string
	WriteBody      string
	WriteUsesValue bool
}

// binderRef is one entry of the binder registry of an adapter.
type binderRef struct {
	Name string
	Func string
}

type registration struct {
	TypeName string
	Adapter  string
}

type converterReg struct {
	Name     string
	Read     string
	Write    string
	Standard bool
}

// registryData holds the data of the registration file.
type registryData struct {
	PackageName      string
	GenerateComments bool
	Imports          []importSpec
	Adapters         []registration
	Converters       []converterReg
}

// fileScope holds the identifiers every adapter file declares or imports.
var fileScope = []string{
	"value", "out", "in", "ok", "err", "r", "w", "cfg", "nameOverride", "name", "b",
	"xmlbind", "fmt", "reflect",
}

// file is the emission state of one generated adapter file.
type file struct {
	g       *Generator
	plan    *ir.AdapterPlan
	imports map[string]importSpec
	buf     *bytes.Buffer
	names   *stems
	// usesValue records whether emitted code referenced the value local.
	usesValue bool
	// recv spells the type the read code stores into.
	recv string
}

func (g *Generator) newFile(p *ir.AdapterPlan) *file {
	f := &file{
		g:       g,
		plan:    p,
		imports: make(map[string]importSpec),
		names:   newStems(fileScope...),
	}

	f.names.take(common.PkgAlias(p.Type.PkgPath))
	for _, id := range ir.TypeRefs(p) {
		f.names.take(common.PkgAlias(id.PkgPath))
	}

	f.addImport(runtimePkg)
	f.addImport("fmt")

	return f
}

func (g *Generator) buildTemplateData(p *ir.AdapterPlan) (*templateData, error) {
	f := g.newFile(p)
	base := g.names[p.Type]

	data := &templateData{
		PackageName:      g.config.PackageName,
		Filename:         base + "_xml.go",
		GenerateComments: g.config.GenerateComments,
		TypeName:         p.Type.Name,
		XMLName:          p.XMLName,
		Adapter:          g.adapterName(p.Type),
		ValueType:        f.typeName(p.Type),
		BindersVar:       base + "Binders",
	}

	data.RecvType = data.ValueType
	if p.Constructor != "" {
		data.RecvType = base + "Params"
		data.Holder = f.holderStruct(data.RecvType)
	}

	data.Recv = "*" + data.RecvType
	f.recv = data.Recv

	for _, b := range p.Binders {
		fn := "new" + common.Exported(p.Type.Name) + common.Exported(b.Name) + "Binder"
		data.Binders = append(data.Binders, binderRef{Name: b.Name, Func: fn})

		funcs, err := f.binderFuncs(fn, b)
		if err != nil {
			return nil, err
		}

		data.BinderFuncs = append(data.BinderFuncs, funcs...)
	}

	read, construct := splitConstruct(p.Read)

	body, err := f.capture(func() error { return f.readStmts(read) })
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	data.ReadBody = body

	if construct != nil {
		data.Construct = f.construct(*construct)
	}

	f.usesValue = false

	body, err = f.capture(func() error { return f.writeStmts(p.Write) })
	if err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	data.WriteBody = body
	data.WriteUsesValue = f.usesValue
	data.Imports = f.sortedImports()

	return data, nil
}

// splitConstruct separates the trailing constructor call from the read program.
func splitConstruct(stmts []ir.Stmt) ([]ir.Stmt, *ir.Construct) {
	if len(stmts) == 0 {
		return stmts, nil
	}

	if c, ok := stmts[len(stmts)-1].(ir.Construct); ok {
		return stmts[:len(stmts)-1], &c
	}

	return stmts, nil
}

// construct spells the statements that build the value from the holder.
func (f *file) construct(c ir.Construct) string {
	args := make([]string, len(c.Params))
	for i, p := range c.Params {
		args[i] = "value." + p
	}

	return fmt.Sprintf("out := %s(%s)\n\treturn &out, nil",
		f.funcName(c.Func, f.plan.Type), strings.Join(args, ", "))
}

// binderFuncs spells the constructor function of a binder and of every binder
// nested below it, outermost first.
func (f *file) binderFuncs(fn string, b *ir.BinderPlan) ([]string, error) {
	var (
		nested []string
		out    []string
	)

	body, err := f.capture(func() error {
		f.printf("func %s() *xmlbind.NestedChildElementBinder[%s] {\n", fn, f.recv)
		f.printf("b := xmlbind.NewNestedChildElementBinder[%s]()\n", f.recv)

		for _, a := range b.Attributes {
			f.printf("b.Attributes[%q] = xmlbind.AttributeBinderFunc[%s](%s error {\n", a.Name, f.recv, f.handlerSignature())
			if err := f.readStmts(a.Body); err != nil {
				return err
			}
			f.printf("return nil\n})\n")
		}

		for _, c := range b.Children {
			if c.Nested != nil {
				child := fn[:len(fn)-len("Binder")] + common.Exported(c.Name) + "Binder"
				f.printf("b.Children[%q] = %s()\n", c.Name, child)

				funcs, err := f.binderFuncs(child, c.Nested)
				if err != nil {
					return err
				}

				nested = append(nested, funcs...)

				continue
			}

			f.printf("b.Children[%q] = xmlbind.ChildElementBinderFunc[%s](%s error {\n", c.Name, f.recv, f.handlerSignature())
			if err := f.readStmts(c.Body); err != nil {
				return err
			}
			f.printf("return nil\n})\n")
		}

		f.printf("return b\n}\n")

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("binder %s: %w", b.Name, err)
	}

	out = append(out, body)

	return append(out, nested...), nil
}

func (f *file) handlerSignature() string {
	return "func(r xmlbind.Reader, cfg *xmlbind.Config, value " + f.recv + ")"
}

// capture runs emit against a fresh buffer and returns what it wrote.
func (f *file) capture(emit func() error) (string, error) {
	prev := f.buf
	f.buf = &bytes.Buffer{}

	defer func() { f.buf = prev }()

	if err := emit(); err != nil {
		return "", err
	}

	return f.buf.String(), nil
}

func (f *file) printf(format string, args ...any) {
	fmt.Fprintf(f.buf, format, args...)
}

// unique returns a fresh local name for the file.
func (f *file) unique(prefix string) string {
	return f.names.next(prefix)
}

// check emits a call whose error aborts the enclosing function.
func (f *file) check(call string) {
	f.printf("if err := %s; err != nil {\nreturn err\n}\n", call)
}

func (f *file) checkErr() {
	f.printf("if err != nil {\nreturn err\n}\n")
}

// declared reports whether id has a generated adapter returning *id.
func (f *file) declared(id model.TypeID) bool {
	return f.g.declared[id]
}
