package interp

import (
	"fmt"
	"reflect"

	"xmlbind-generator/internal/ir"
	"xmlbind-generator/xmlbind"
)

func (b *builder) writeStmts(stmts []ir.Stmt) (op, error) {
	ops := make([]op, 0, len(stmts))

	for _, st := range stmts {
		o, err := b.writeStmt(st)
		if err != nil {
			return nil, err
		}

		ops = append(ops, o)
	}

	return seq(ops), nil
}

func (b *builder) writeStmt(st ir.Stmt) (op, error) {
	switch n := st.(type) {
	case ir.BeginElement:
		if n.Overridable {
			return func(s *state) error {
				return s.w.BeginElement(xmlbind.ElementName(n.Name, s.nameOverride))
			}, nil
		}

		return func(s *state) error { return s.w.BeginElement(n.Name) }, nil
	case ir.EndElement:
		return func(s *state) error { return s.w.EndElement() }, nil
	case ir.WriteAttribute:
		return b.writeScalar(n.Value, n.Expr, func(s *state, text string) error {
			return s.w.Attribute(n.Name, text)
		})
	case ir.WriteText:
		return b.writeScalar(n.Value, n.Expr, func(s *state, text string) error {
			if n.CData {
				return s.w.TextContentAsCData(text)
			}

			return s.w.TextContent(text)
		})
	case ir.WriteChild:
		return b.writeChild(n)
	case ir.IfPresent:
		return b.ifPresent(n)
	case ir.ForEach:
		return b.forEach(n)
	case ir.TypeSwitch:
		return b.typeSwitch(n)
	case ir.Raise:
		v, err := b.operand(n.Value)
		if err != nil {
			return nil, err
		}

		return func(s *state) error {
			val, err := v(s)
			if err != nil {
				return err
			}

			var raised any
			if val.IsValid() {
				raised = val.Interface()
			}

			return &xmlbind.NoMatchingVariantError{Value: raised}
		}, nil
	default:
		return nil, fmt.Errorf("unexpected %T in write sequence", st)
	}
}

// operand resolves the value a write statement works on.
func (b *builder) operand(o ir.Operand) (value, error) {
	switch n := o.(type) {
	case ir.MemberOf:
		src, err := b.slot(n.Target)
		if err != nil {
			return nil, err
		}

		return func(s *state) (reflect.Value, error) { return src.get(s.f) }, nil
	case ir.Local:
		return func(s *state) (reflect.Value, error) {
			v, ok := s.locals[n.Name]
			if !ok {
				return reflect.Value{}, fmt.Errorf("unbound local %s", n.Name)
			}

			return v, nil
		}, nil
	default:
		return nil, fmt.Errorf("unexpected operand %T", o)
	}
}

func (b *builder) writeScalar(o ir.Operand, e ir.WriteExpr, emit func(s *state, text string) error) (op, error) {
	v, err := b.operand(o)
	if err != nil {
		return nil, err
	}

	format, err := formatter(e)
	if err != nil {
		return nil, err
	}

	return func(s *state) error {
		val, err := v(s)
		if err != nil {
			return err
		}

		text, err := format(s, val)
		if err != nil {
			return err
		}

		return emit(s, text)
	}, nil
}

func formatter(e ir.WriteExpr) (func(s *state, v reflect.Value) (string, error), error) {
	switch n := e.(type) {
	case ir.ScalarWrite:
		return func(_ *state, v reflect.Value) (string, error) {
			return formatScalar(v, n.Kind)
		}, nil
	case ir.ConverterWrite:
		typeName := n.Type.String()

		return func(s *state, v reflect.Value) (string, error) {
			conv, err := lookupConverter(s.cfg, n.Converter, typeName)
			if err != nil {
				return "", err
			}

			arg := v.Interface()
			if n.Converter == "" {
				if arg, err = canonical(v, typeName); err != nil {
					return "", xmlbind.Guard(err)
				}
			}

			text, err := conv.Write(arg)
			if err != nil {
				return "", xmlbind.Guard(err)
			}

			return text, nil
		}, nil
	default:
		return nil, fmt.Errorf("unexpected write expression %T", e)
	}
}

func (b *builder) writeChild(n ir.WriteChild) (op, error) {
	v, err := b.operand(n.Value)
	if err != nil {
		return nil, err
	}

	typeName := n.Expr.Type.String()

	return func(s *state) error {
		val, err := v(s)
		if err != nil {
			return err
		}

		return xmlbind.WriteChild(s.w, s.cfg, typeName, val.Interface(), n.Expr.NameOverride)
	}, nil
}

func (b *builder) ifPresent(n ir.IfPresent) (op, error) {
	v, err := b.operand(n.Value)
	if err != nil {
		return nil, err
	}

	body, err := b.writeStmts(n.Body)
	if err != nil {
		return nil, err
	}

	return func(s *state) error {
		val, err := v(s)
		if err != nil {
			return err
		}

		if !present(val, n.Presence) {
			return nil
		}

		return body(s)
	}, nil
}

func (b *builder) forEach(n ir.ForEach) (op, error) {
	v, err := b.operand(n.Value)
	if err != nil {
		return nil, err
	}

	body, err := b.writeStmts(n.Body)
	if err != nil {
		return nil, err
	}

	return func(s *state) error {
		val, err := v(s)
		if err != nil {
			return err
		}

		if val.Kind() == reflect.Pointer {
			val = val.Elem()
		}

		if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
			return fmt.Errorf("cannot iterate over %s", val.Type())
		}

		for i := range val.Len() {
			s.locals[n.Item.Name] = val.Index(i)

			if err := body(s); err != nil {
				return err
			}
		}

		return nil
	}, nil
}

type variant struct {
	matches func(t reflect.Type) bool
	as      string
	body    op
}

// typeSwitch tests cases in plan order; a value matches a case bound to T when it is a
// T or a *T, or implements T when T is an interface.
func (b *builder) typeSwitch(n ir.TypeSwitch) (op, error) {
	v, err := b.operand(n.Value)
	if err != nil {
		return nil, err
	}

	variants := make([]variant, 0, len(n.Cases))

	for _, c := range n.Cases {
		rt, ok := b.reg.types[c.Type]
		if !ok {
			return nil, fmt.Errorf("%w: variant %s", ErrUnbound, c.Type)
		}

		body, err := b.writeStmts(c.Body)
		if err != nil {
			return nil, err
		}

		variants = append(variants, variant{matches: matcher(rt), as: c.As.Name, body: body})
	}

	fallback, err := b.writeStmts(n.Fallback)
	if err != nil {
		return nil, err
	}

	return func(s *state) error {
		val, err := v(s)
		if err != nil {
			return err
		}

		if val.Kind() == reflect.Interface && !val.IsNil() {
			val = val.Elem()
		}

		for _, vr := range variants {
			if val.IsValid() && vr.matches(val.Type()) {
				s.locals[vr.as] = val
				return vr.body(s)
			}
		}

		return fallback(s)
	}, nil
}

func matcher(rt reflect.Type) func(t reflect.Type) bool {
	if rt.Kind() == reflect.Interface {
		return func(t reflect.Type) bool { return t.Implements(rt) }
	}

	pt := reflect.PointerTo(rt)

	return func(t reflect.Type) bool { return t == rt || t == pt }
}
