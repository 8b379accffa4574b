package gen

import (
	"fmt"

	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
)

// readStmts emits a read program into a function returning error.
func (f *file) readStmts(stmts []ir.Stmt) error {
	for _, st := range stmts {
		if err := f.readStmt(st); err != nil {
			return err
		}
	}

	return nil
}

// skipsText reports whether a child loop drops its text content.
func skipsText(stmts []ir.Stmt) bool {
	return len(stmts) == 0 || (len(stmts) == 1 && stmts[0] == (ir.SkipText{}))
}

func (f *file) readStmt(st ir.Stmt) error {
	switch n := st.(type) {
	case ir.AttributeLoop:
		f.printf("if err := xmlbind.ReadAttributes(r, func(name string) error {\n")
		if err := f.dispatch(n.Dispatch); err != nil {
			return err
		}
		f.printf("return nil\n}); err != nil {\nreturn err\n}\n")
	case ir.ChildLoop:
		f.printf("if err := xmlbind.ReadChildren(r, func(name string) error {\n")
		if err := f.dispatch(n.Elements); err != nil {
			return err
		}
		f.printf("return nil\n}, ")

		if skipsText(n.Text) {
			f.printf("nil")
		} else {
			f.printf("func(r xmlbind.Reader) error {\n")
			if err := f.readStmts(n.Text); err != nil {
				return err
			}
			f.printf("return nil\n}")
		}

		f.printf("); err != nil {\nreturn err\n}\n")
	case ir.Assign:
		return f.store(n.Target, n.Value, false)
	case ir.Append:
		return f.store(n.Target, n.Value, true)
	case ir.IgnoreAttributes:
		f.check("xmlbind.IgnoreAttributes(r, cfg)")
	case ir.SkipText:
		f.check("r.SkipTextContent()")
	case ir.Unmapped:
		if n.Subject == ir.SubjectAttribute {
			f.check("xmlbind.UnmappedAttribute(r, cfg, name)")
		} else {
			f.check("xmlbind.UnmappedElement(r, cfg, name)")
		}
	case ir.BinderLookup:
		f.usesValue = true
		f.printf("if b, ok := %sBinders[name]; ok {\n", f.g.names[f.plan.Type])
		f.check("b.FromXML(r, cfg, value)")
		f.printf("return r.EndElement()\n}\n")

		return f.readStmts(n.Fallback)
	case ir.ConsumeEnd:
		f.check("r.EndElement()")
	default:
		return fmt.Errorf("unexpected %T in read sequence", st)
	}

	return nil
}

// dispatch emits a name branch: the default alone, an if/else for one name or a
// switch for many.
func (f *file) dispatch(d ir.Dispatch) error {
	switch d.Strategy {
	case ir.StrategyNone:
		return f.readStmts(d.Default)
	case ir.StrategySingle:
		f.printf("if name == %q {\n", d.Cases[0].Name)
		if err := f.readStmts(d.Cases[0].Body); err != nil {
			return err
		}
		f.printf("} else {\n")
		if err := f.readStmts(d.Default); err != nil {
			return err
		}
		f.printf("}\n")
	default:
		f.printf("switch name {\n")
		for _, c := range d.Cases {
			f.printf("case %q:\n", c.Name)
			if err := f.readStmts(c.Body); err != nil {
				return err
			}
		}
		f.printf("default:\n")
		if err := f.readStmts(d.Default); err != nil {
			return err
		}
		f.printf("}\n")
	}

	return nil
}

// memberRead spells the current value of a read target.
func (f *file) memberRead(t ir.Target) string {
	f.usesValue = true

	if t.Temp != "" {
		return "value." + t.Temp
	}

	return t.Access.ReadExpr("value")
}

// memberWrite spells the statement storing v into a read target.
func (f *file) memberWrite(t ir.Target, v string) string {
	f.usesValue = true

	if t.Temp != "" {
		return "value." + t.Temp + " = " + v
	}

	return t.Access.Assignment("value", "", v)
}

func (f *file) store(t ir.Target, e ir.ReadExpr, appendTo bool) error {
	v, err := f.readValue(e, t.Type)
	if err != nil {
		return err
	}

	if appendTo {
		v = fmt.Sprintf("append(%s, %s)", f.memberRead(t), v)
	}

	f.printf("%s\n", f.memberWrite(t, v))

	return nil
}

// readValue emits the read of one value and returns an expression of the Go type
// spelled by vt.
func (f *file) readValue(e ir.ReadExpr, vt model.ValueType) (string, error) {
	switch n := e.(type) {
	case ir.ScalarRead:
		accessor, err := scalarAccessor(n.Source, n.Kind)
		if err != nil {
			return "", err
		}

		v := f.unique("v")
		f.printf("%s, err := r.%s()\n", v, accessor)
		f.checkErr()

		return f.adapt(v, n.Kind.GoName(), vt), nil
	case ir.ConverterRead:
		raw := f.unique("raw")
		if n.Source == ir.SourceAttribute {
			f.printf("%s, err := r.NextAttributeValue()\n", raw)
		} else {
			f.printf("%s, err := r.NextTextContent()\n", raw)
		}
		f.checkErr()

		v := f.unique("v")

		if n.Converter != "" {
			base := f.typeName(vt.ID)
			f.printf("%s, err := xmlbind.ReadWith[%s](cfg, %q, %s)\n", v, base, n.Converter, raw)
			f.checkErr()

			return f.adapt(v, base, vt), nil
		}

		f.printf("%s, err := xmlbind.ReadAs[%s](cfg, %q, %s)\n", v, n.Type.Name, n.Type.String(), raw)
		f.checkErr()

		return f.adapt(v, n.Type.Name, vt), nil
	case ir.DelegateRead:
		return f.delegateRead(n, vt), nil
	default:
		return "", fmt.Errorf("unexpected read expression %T", e)
	}
}

// delegateRead reads a child through its adapter. Generated adapters return *T,
// which is dereferenced for plain struct members.
func (f *file) delegateRead(n ir.DelegateRead, vt model.ValueType) string {
	v := f.unique("v")

	switch {
	case vt.ID.IsAny():
		f.printf("%s, err := xmlbind.ReadChild(r, cfg, %q)\n", v, n.Type.String())
		f.checkErr()

		return v
	case f.declared(n.Type):
		f.printf("%s, err := xmlbind.ReadChildAs[*%s](r, cfg, %q)\n", v, f.typeName(n.Type), n.Type.String())
		f.checkErr()

		if n.Type == vt.ID && !vt.Optional {
			return "*" + v
		}

		return v
	default:
		f.printf("%s, err := xmlbind.ReadChildAs[%s](r, cfg, %q)\n", v, f.valueType(vt), n.Type.String())
		f.checkErr()

		return v
	}
}

// adapt converts v from the Go type have to the type spelled by vt.
func (f *file) adapt(v, have string, vt model.ValueType) string {
	if want := f.typeName(vt.ID); want != have {
		v = fmt.Sprintf("%s(%s)", want, v)
	}

	if vt.Optional {
		return "xmlbind.Ptr(" + v + ")"
	}

	return v
}

func scalarAccessor(src ir.Source, k model.ScalarKind) (string, error) {
	prefix := "NextTextContent"
	if src == ir.SourceAttribute {
		prefix = "NextAttributeValue"
	}

	switch k {
	case model.KindString:
		return prefix, nil
	case model.KindBool:
		return prefix + "AsBool", nil
	case model.KindInt:
		return prefix + "AsInt", nil
	case model.KindLong:
		return prefix + "AsLong", nil
	case model.KindDouble:
		return prefix + "AsDouble", nil
	default:
		return "", fmt.Errorf("unexpected scalar kind %s", k)
	}
}

// formatter spells the name of the typed formatter of k.
func formatter(k model.ScalarKind) (string, error) {
	switch k {
	case model.KindString:
		return "xmlbind.FormatString", nil
	case model.KindBool:
		return "xmlbind.FormatBool", nil
	case model.KindInt:
		return "xmlbind.FormatInt", nil
	case model.KindLong:
		return "xmlbind.FormatLong", nil
	case model.KindDouble:
		return "xmlbind.FormatDouble", nil
	default:
		return "", fmt.Errorf("unexpected scalar kind %s", k)
	}
}
