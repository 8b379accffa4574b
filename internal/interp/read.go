package interp

import (
	"fmt"
	"reflect"

	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
	"xmlbind-generator/xmlbind"
)

// skipsText reports whether a child loop drops its text content.
func skipsText(stmts []ir.Stmt) bool {
	return len(stmts) == 0 || (len(stmts) == 1 && stmts[0] == (ir.SkipText{}))
}

// value yields one read value.
type value func(s *state) (reflect.Value, error)

func (b *builder) readStmts(stmts []ir.Stmt) (op, error) {
	ops := make([]op, 0, len(stmts))

	for _, st := range stmts {
		o, err := b.readStmt(st)
		if err != nil {
			return nil, err
		}

		ops = append(ops, o)
	}

	return seq(ops), nil
}

func (b *builder) readStmt(st ir.Stmt) (op, error) {
	switch n := st.(type) {
	case ir.AttributeLoop:
		d, err := b.dispatch(n.Dispatch)
		if err != nil {
			return nil, err
		}

		return func(s *state) error {
			return xmlbind.ReadAttributes(s.r, func(name string) error {
				s.attribute = name
				return d(s, name)
			})
		}, nil
	case ir.ChildLoop:
		d, err := b.dispatch(n.Elements)
		if err != nil {
			return nil, err
		}

		var onText func(s *state) func(xmlbind.Reader) error

		if !skipsText(n.Text) {
			text, err := b.readStmts(n.Text)
			if err != nil {
				return nil, err
			}

			onText = func(s *state) func(xmlbind.Reader) error {
				return func(tr xmlbind.Reader) error {
					outer := s.r
					s.r = tr

					defer func() { s.r = outer }()

					return text(s)
				}
			}
		}

		return func(s *state) error {
			var text func(xmlbind.Reader) error
			if onText != nil {
				text = onText(s)
			}

			return xmlbind.ReadChildren(s.r, func(name string) error {
				s.element = name
				return d(s, name)
			}, text)
		}, nil
	case ir.Assign:
		return b.store(n.Target, n.Value, false)
	case ir.Append:
		return b.store(n.Target, n.Value, true)
	case ir.IgnoreAttributes:
		return func(s *state) error { return xmlbind.IgnoreAttributes(s.r, s.cfg) }, nil
	case ir.SkipText:
		return func(s *state) error { return s.r.SkipTextContent() }, nil
	case ir.Unmapped:
		if n.Subject == ir.SubjectAttribute {
			return func(s *state) error { return xmlbind.UnmappedAttribute(s.r, s.cfg, s.attribute) }, nil
		}

		return func(s *state) error { return xmlbind.UnmappedElement(s.r, s.cfg, s.element) }, nil
	case ir.BinderLookup:
		return b.binderLookup(n)
	case ir.ConsumeEnd:
		return func(s *state) error { return s.r.EndElement() }, nil
	case ir.Construct:
		return b.construct(n)
	default:
		return nil, fmt.Errorf("unexpected %T in read sequence", st)
	}
}

// dispatch builds a name-keyed branch. Every strategy executes as a map lookup.
func (b *builder) dispatch(d ir.Dispatch) (func(s *state, name string) error, error) {
	cases := make(map[string]op, len(d.Cases))

	for _, c := range d.Cases {
		body, err := b.readStmts(c.Body)
		if err != nil {
			return nil, err
		}

		cases[c.Name] = body
	}

	fallback, err := b.readStmts(d.Default)
	if err != nil {
		return nil, err
	}

	return func(s *state, name string) error {
		if body, ok := cases[name]; ok {
			return body(s)
		}

		return fallback(s)
	}, nil
}

func (b *builder) store(target ir.Target, expr ir.ReadExpr, appendTo bool) (op, error) {
	dst, err := b.slot(target)
	if err != nil {
		return nil, err
	}

	read, err := b.readExpr(expr)
	if err != nil {
		return nil, err
	}

	return func(s *state) error {
		v, err := read(s)
		if err != nil {
			return err
		}

		if appendTo {
			return dst.add(s.f, v)
		}

		return dst.set(s.f, v)
	}, nil
}

func (b *builder) binderLookup(n ir.BinderLookup) (op, error) {
	fallback, err := b.readStmts(n.Fallback)
	if err != nil {
		return nil, err
	}

	nested := b.nested

	return func(s *state) error {
		nb, ok := nested[s.element]
		if !ok {
			return fallback(s)
		}

		if err := nb.FromXML(s.r, s.cfg, s.f); err != nil {
			return err
		}

		return s.r.EndElement()
	}, nil
}

func (b *builder) construct(n ir.Construct) (op, error) {
	if !b.ctor.IsValid() {
		return nil, fmt.Errorf("%w: constructor %s", ErrUnbound, n.Func)
	}

	if len(n.Params) != b.ctor.Type().NumIn() {
		return nil, fmt.Errorf("constructor %s takes %d parameters, plan binds %d",
			n.Func, b.ctor.Type().NumIn(), len(n.Params))
	}

	return func(s *state) error {
		args := make([]reflect.Value, len(n.Params))
		for i, name := range n.Params {
			args[i] = s.f.temps[name]
		}

		out := b.ctor.Call(args)
		if len(out) == 2 && !out[1].IsNil() {
			return fmt.Errorf("constructor %s: %w", n.Func, out[1].Interface().(error))
		}

		result := out[0]
		if result.Kind() != reflect.Pointer {
			p := reflect.New(result.Type())
			p.Elem().Set(result)
			result = p
		}

		s.f.value = result

		return nil
	}, nil
}

func (b *builder) readExpr(e ir.ReadExpr) (value, error) {
	switch n := e.(type) {
	case ir.ScalarRead:
		return scalarRead(n)
	case ir.ConverterRead:
		return converterRead(n), nil
	case ir.DelegateRead:
		typeName := n.Type.String()

		return func(s *state) (reflect.Value, error) {
			v, err := xmlbind.ReadChild(s.r, s.cfg, typeName)
			if err != nil {
				return reflect.Value{}, err
			}

			return reflect.ValueOf(v), nil
		}, nil
	default:
		return nil, fmt.Errorf("unexpected read expression %T", e)
	}
}

func lift[T any](read func() (T, error)) (reflect.Value, error) {
	v, err := read()
	if err != nil {
		return reflect.Value{}, err
	}

	return reflect.ValueOf(v), nil
}

func scalarRead(n ir.ScalarRead) (value, error) {
	attr := n.Source == ir.SourceAttribute

	switch n.Kind {
	case model.KindString:
		if attr {
			return func(s *state) (reflect.Value, error) { return lift(s.r.NextAttributeValue) }, nil
		}

		return func(s *state) (reflect.Value, error) { return lift(s.r.NextTextContent) }, nil
	case model.KindBool:
		if attr {
			return func(s *state) (reflect.Value, error) { return lift(s.r.NextAttributeValueAsBool) }, nil
		}

		return func(s *state) (reflect.Value, error) { return lift(s.r.NextTextContentAsBool) }, nil
	case model.KindInt:
		if attr {
			return func(s *state) (reflect.Value, error) { return lift(s.r.NextAttributeValueAsInt) }, nil
		}

		return func(s *state) (reflect.Value, error) { return lift(s.r.NextTextContentAsInt) }, nil
	case model.KindLong:
		if attr {
			return func(s *state) (reflect.Value, error) { return lift(s.r.NextAttributeValueAsLong) }, nil
		}

		return func(s *state) (reflect.Value, error) { return lift(s.r.NextTextContentAsLong) }, nil
	case model.KindDouble:
		if attr {
			return func(s *state) (reflect.Value, error) { return lift(s.r.NextAttributeValueAsDouble) }, nil
		}

		return func(s *state) (reflect.Value, error) { return lift(s.r.NextTextContentAsDouble) }, nil
	default:
		return nil, fmt.Errorf("unexpected scalar kind %s", n.Kind)
	}
}

func converterRead(n ir.ConverterRead) value {
	return func(s *state) (reflect.Value, error) {
		conv, err := lookupConverter(s.cfg, n.Converter, n.Type.String())
		if err != nil {
			return reflect.Value{}, err
		}

		var raw string
		if n.Source == ir.SourceAttribute {
			raw, err = s.r.NextAttributeValue()
		} else {
			raw, err = s.r.NextTextContent()
		}

		if err != nil {
			return reflect.Value{}, err
		}

		v, err := conv.Read(raw)
		if err != nil {
			return reflect.Value{}, xmlbind.Guard(err)
		}

		return reflect.ValueOf(v), nil
	}
}

// lookupConverter resolves a named custom converter, or the type converter of
// typeName when name is empty.
func lookupConverter(cfg *xmlbind.Config, name, typeName string) (xmlbind.Converter, error) {
	if name != "" {
		return cfg.Converter(name)
	}

	return cfg.TypeConverter(typeName)
}
