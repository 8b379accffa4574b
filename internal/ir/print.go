package ir

import (
	"fmt"
	"strings"
)

// Format renders statements in a compact, indented text form for dumps and tests.
func Format(stmts []Stmt) string {
	var p printer
	p.block(stmts)

	return p.String()
}

// FormatPlan renders a whole adapter plan.
func FormatPlan(plan *AdapterPlan) string {
	var p printer

	p.line("adapter %s <%s> {", plan.Type, plan.XMLName)
	p.depth++

	if plan.Constructor != "" {
		names := make([]string, 0, len(plan.Temps))
		for _, t := range plan.Temps {
			names = append(names, t.Name+" "+t.Type.String())
		}

		p.line("temps(%s) -> %s", strings.Join(names, ", "), plan.Constructor)
	}

	p.line("read {")
	p.nested(plan.Read)
	p.line("}")
	p.line("write {")
	p.nested(plan.Write)
	p.line("}")

	for _, b := range plan.Binders {
		p.binder(b)
	}

	p.depth--
	p.line("}")

	return p.String()
}

type printer struct {
	strings.Builder
	depth int
}

func (p *printer) line(format string, args ...any) {
	p.WriteString(strings.Repeat("  ", p.depth))
	fmt.Fprintf(p, format, args...)
	p.WriteByte('\n')
}

func (p *printer) nested(stmts []Stmt) {
	p.depth++
	p.block(stmts)
	p.depth--
}

func (p *printer) block(stmts []Stmt) {
	for _, s := range stmts {
		p.stmt(s)
	}
}

func (p *printer) binder(b *BinderPlan) {
	p.line("binder %q {", b.Name)
	p.depth++

	for _, a := range b.Attributes {
		p.line("attribute %q {", a.Name)
		p.nested(a.Body)
		p.line("}")
	}

	for _, c := range b.Children {
		if c.Nested != nil {
			p.binder(c.Nested)
			continue
		}

		p.line("element %q {", c.Name)
		p.nested(c.Body)
		p.line("}")
	}

	p.depth--
	p.line("}")
}

func (p *printer) dispatch(d Dispatch) {
	subject := d.Subject.String()

	switch d.Strategy {
	case StrategyNone:
		p.block(d.Default)
	case StrategySingle:
		p.line("if %s == %q {", subject, d.Cases[0].Name)
		p.nested(d.Cases[0].Body)
		p.line("} else {")
		p.nested(d.Default)
		p.line("}")
	default:
		p.line("switch %s {", subject)

		for _, c := range d.Cases {
			p.line("case %q:", c.Name)
			p.nested(c.Body)
		}

		p.line("default:")
		p.nested(d.Default)
		p.line("}")
	}
}

func (p *printer) stmt(s Stmt) {
	switch n := s.(type) {
	case AttributeLoop:
		p.line("for attribute {")
		p.depth++
		p.dispatch(n.Dispatch)
		p.depth--
		p.line("}")
	case ChildLoop:
		p.line("for child {")
		p.depth++
		p.line("element:")
		p.depth++
		p.dispatch(n.Elements)
		p.depth--
		p.line("text:")
		p.nested(n.Text)
		p.depth--
		p.line("}")
	case Dispatch:
		p.dispatch(n)
	case Assign:
		p.line("%s = %s", targetString(n.Target), readString(n.Value))
	case Append:
		p.line("%s += %s", targetString(n.Target), readString(n.Value))
	case IgnoreAttributes:
		p.line("ignore attributes")
	case SkipText:
		p.line("skip text")
	case Unmapped:
		p.line("unmapped %s", n.Subject)
	case BinderLookup:
		p.line("binder lookup else {")
		p.nested(n.Fallback)
		p.line("}")
	case ConsumeEnd:
		p.line("end child")
	case Construct:
		p.line("construct %s(%s)", n.Func, strings.Join(n.Params, ", "))
	case BeginElement:
		if n.Overridable {
			p.line("begin %q or override", n.Name)
		} else {
			p.line("begin %q", n.Name)
		}
	case EndElement:
		p.line("end")
	case WriteAttribute:
		p.line("attribute %q = %s %s", n.Name, operandString(n.Value), writeString(n.Expr))
	case WriteText:
		if n.CData {
			p.line("cdata %s %s", operandString(n.Value), writeString(n.Expr))
		} else {
			p.line("text %s %s", operandString(n.Value), writeString(n.Expr))
		}
	case WriteChild:
		p.line("child %s %s", operandString(n.Value), writeString(n.Expr))
	case IfPresent:
		mode := "present"
		if n.Presence == PresenceNonZero {
			mode = "non-zero"
		}

		p.line("if %s %s {", mode, operandString(n.Value))
		p.nested(n.Body)
		p.line("}")
	case ForEach:
		p.line("for %s in %s {", n.Item.Name, operandString(n.Value))
		p.nested(n.Body)
		p.line("}")
	case TypeSwitch:
		p.line("switch type %s {", operandString(n.Value))

		for _, c := range n.Cases {
			p.line("case %s as %q:", c.Type, c.Tag)
			p.nested(c.Body)
		}

		p.line("default:")
		p.nested(n.Fallback)
		p.line("}")
	case Raise:
		p.line("raise no matching variant %s", operandString(n.Value))
	default:
		p.line("<%T>", s)
	}
}

func targetString(t Target) string {
	if t.Temp != "" {
		return t.Temp
	}

	return t.Access.String()
}

func operandString(op Operand) string {
	switch o := op.(type) {
	case MemberOf:
		return o.Recv + "." + targetString(o.Target)
	case Local:
		return o.Name
	default:
		return fmt.Sprintf("<%T>", op)
	}
}

func readString(e ReadExpr) string {
	switch r := e.(type) {
	case ScalarRead:
		return fmt.Sprintf("read %s as %s", r.Source, r.Kind)
	case ConverterRead:
		if r.Converter != "" {
			return fmt.Sprintf("convert %s with %q", r.Source, r.Converter)
		}

		return fmt.Sprintf("convert %s with %s", r.Source, r.Type)
	case DelegateRead:
		return "delegate " + r.Type.String()
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func writeString(e WriteExpr) string {
	switch w := e.(type) {
	case ScalarWrite:
		return "as " + w.Kind.String()
	case ConverterWrite:
		if w.Converter != "" {
			return fmt.Sprintf("with %q", w.Converter)
		}

		return "with " + w.Type.String()
	case DelegateWrite:
		if w.NameOverride != "" {
			return fmt.Sprintf("via %s as %q", w.Type, w.NameOverride)
		}

		return "via " + w.Type.String()
	default:
		return fmt.Sprintf("<%T>", e)
	}
}
