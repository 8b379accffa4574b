package gen

import (
	"fmt"

	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
)

// writeStmts emits a write program into a function returning error.
func (f *file) writeStmts(stmts []ir.Stmt) error {
	for _, st := range stmts {
		if err := f.writeStmt(st); err != nil {
			return err
		}
	}

	return nil
}

func (f *file) writeStmt(st ir.Stmt) error {
	switch n := st.(type) {
	case ir.BeginElement:
		if n.Overridable {
			f.check(fmt.Sprintf("w.BeginElement(xmlbind.ElementName(%q, nameOverride))", n.Name))
		} else {
			f.check(fmt.Sprintf("w.BeginElement(%q)", n.Name))
		}
	case ir.EndElement:
		f.check("w.EndElement()")
	case ir.WriteAttribute:
		text, err := f.format(n.Value, n.Expr)
		if err != nil {
			return err
		}

		f.check(fmt.Sprintf("w.Attribute(%q, %s)", n.Name, text))
	case ir.WriteText:
		text, err := f.format(n.Value, n.Expr)
		if err != nil {
			return err
		}

		if n.CData {
			f.check(fmt.Sprintf("w.TextContentAsCData(%s)", text))
		} else {
			f.check(fmt.Sprintf("w.TextContent(%s)", text))
		}
	case ir.WriteChild:
		f.check(fmt.Sprintf("xmlbind.WriteChild(w, cfg, %q, %s, %q)",
			n.Expr.Type.String(), f.operand(n.Value), n.Expr.NameOverride))
	case ir.IfPresent:
		f.printf("if %s {\n", f.presence(n.Value, n.Presence))
		if err := f.writeStmts(n.Body); err != nil {
			return err
		}
		f.printf("}\n")
	case ir.ForEach:
		f.printf("for _, %s := range %s {\n", n.Item.Name, f.operand(n.Value))
		if err := f.writeStmts(n.Body); err != nil {
			return err
		}
		f.printf("}\n")
	case ir.TypeSwitch:
		return f.typeSwitch(n)
	case ir.Raise:
		f.printf("return &xmlbind.NoMatchingVariantError{Value: %s}\n", f.operand(n.Value))
	default:
		return fmt.Errorf("unexpected %T in write sequence", st)
	}

	return nil
}

// operand spells the value a write statement works on.
func (f *file) operand(o ir.Operand) string {
	switch n := o.(type) {
	case ir.MemberOf:
		f.usesValue = true
		return n.Target.Access.ReadExpr(n.Recv)
	case ir.Local:
		return n.Name
	default:
		return "nil"
	}
}

// deref spells the pointed-to value of an optional operand.
func (f *file) deref(o ir.Operand) string {
	if ir.TypeOf(o).Optional {
		return "*" + f.operand(o)
	}

	return f.operand(o)
}

// format emits the formatting of a scalar operand and returns the string expression.
func (f *file) format(o ir.Operand, e ir.WriteExpr) (string, error) {
	vt := ir.TypeOf(o)

	switch n := e.(type) {
	case ir.ScalarWrite:
		fn, err := formatter(n.Kind)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s(%s)", fn, f.convert(f.deref(o), vt, n.Kind.GoName())), nil
	case ir.ConverterWrite:
		s := f.unique("s")

		if n.Converter != "" {
			f.printf("%s, err := xmlbind.WriteWith(cfg, %q, %s)\n", s, n.Converter, f.deref(o))
		} else {
			f.printf("%s, err := xmlbind.WriteAs(cfg, %q, %s)\n", s, n.Type.String(), f.convert(f.deref(o), vt, n.Type.Name))
		}

		f.checkErr()

		return s, nil
	default:
		return "", fmt.Errorf("unexpected write expression %T", e)
	}
}

// convert spells v as the Go type want when the member is spelled differently.
func (f *file) convert(v string, vt model.ValueType, want string) string {
	if f.typeName(vt.ID) == want {
		return v
	}

	return fmt.Sprintf("%s(%s)", want, v)
}

// presence spells the condition under which an operand is written.
func (f *file) presence(o ir.Operand, p ir.Presence) string {
	vt := ir.TypeOf(o)
	v := f.operand(o)

	if m, ok := o.(ir.MemberOf); ok && m.Target.Sequence {
		return v + " != nil"
	}

	switch {
	case vt.Optional || vt.ID.IsAny():
		return v + " != nil"
	case vt.IsScalar():
		if p == ir.PresenceNonNil {
			return "true"
		}

		switch vt.Scalar() {
		case model.KindString:
			return v + ` != ""`
		case model.KindBool:
			return v
		default:
			return v + " != 0"
		}
	case !f.declared(vt.ID):
		// Interfaces
		return v + " != nil"
	case p == ir.PresenceNonZero:
		return "!" + f.qualified("reflect", "ValueOf") + "(" + v + ").IsZero()"
	default:
		return "true"
	}
}

// typeSwitch emits an ordered chain of type tests. A case bound to a declared
// type matches the type and its pointer.
func (f *file) typeSwitch(n ir.TypeSwitch) error {
	v := f.operand(n.Value)

	for i, c := range n.Cases {
		kw := "if"
		if i > 0 {
			kw = "} else if"
		}

		if f.declared(c.Type) {
			f.printf("%s %s, ok := xmlbind.As[%s](%s); ok {\n", kw, c.As.Name, f.typeName(c.Type), v)
		} else {
			f.printf("%s %s, ok := any(%s).(%s); ok {\n", kw, c.As.Name, v, f.typeName(c.Type))
		}

		if err := f.writeStmts(c.Body); err != nil {
			return err
		}
	}

	if len(n.Cases) > 0 {
		f.printf("} else {\n")
	}

	if err := f.writeStmts(n.Fallback); err != nil {
		return err
	}

	if len(n.Cases) > 0 {
		f.printf("}\n")
	}

	return nil
}
