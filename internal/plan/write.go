package plan

import (
	"fmt"

	"xmlbind-generator/internal/common"
	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
	"xmlbind-generator/internal/poly"
)

// defaultXMLName is the element name of an undeclared type: its decapitalized name.
func defaultXMLName(id model.TypeID) string {
	return common.Decapitalize(id.Name)
}

// write compiles the write sequence of a type root. The root name may be overridden by
// the caller of the adapter.
func (u *unit) write(root *model.Element) ([]ir.Stmt, error) {
	content, err := u.writeContent(root)
	if err != nil {
		return nil, err
	}

	stmts := make([]ir.Stmt, 0, len(content)+2)
	stmts = append(stmts, ir.BeginElement{Name: u.decl.XMLName, Overridable: true})
	stmts = append(stmts, content...)

	return append(stmts, ir.EndElement{}), nil
}

// writeContent emits attributes, then text, then members in declaration order.
// Placeholder members open and close their element around their own content.
func (u *unit) writeContent(el *model.Element) ([]ir.Stmt, error) {
	var out []ir.Stmt

	for _, id := range el.Attributes.Values() {
		f := u.m.Field(id)
		op := u.member(f)
		out = append(out, u.ifPresent(f, op, ir.WriteAttribute{
			Name:  f.Name,
			Value: op,
			Expr:  u.c.chain.ResolveWrite(f.Type, f.Converter),
		})...)
	}

	if el.Text != model.NoField {
		f := u.m.Field(el.Text)
		op := u.member(f)
		out = append(out, u.ifPresent(f, op, u.writeText(f, op))...)
	}

	for _, mem := range el.Members {
		if mem.IsPlaceholder() {
			ph := u.m.Element(mem.Placeholder)

			inner, err := u.writeContent(ph)
			if err != nil {
				return nil, err
			}

			out = append(out, ir.BeginElement{Name: ph.Name})
			out = append(out, inner...)
			out = append(out, ir.EndElement{})

			continue
		}

		stmts, err := u.writeMember(u.m.Field(mem.Field))
		if err != nil {
			return nil, err
		}

		out = append(out, stmts...)
	}

	return out, nil
}

// ifPresent wraps body in a presence test when f may be absent.
func (u *unit) ifPresent(f *model.Field, op ir.Operand, body ...ir.Stmt) []ir.Stmt {
	if !f.Nullable() {
		return body
	}

	presence := ir.PresenceNonNil
	if f.OmitEmpty {
		presence = ir.PresenceNonZero
	}

	return []ir.Stmt{ir.IfPresent{Value: op, Presence: presence, Body: body}}
}

func (u *unit) writeText(f *model.Field, op ir.Operand) ir.WriteText {
	return ir.WriteText{
		Value: op,
		Expr:  u.c.chain.ResolveWrite(f.Type, f.Converter),
		CData: f.CData && f.Type.Scalar() == model.KindString,
	}
}

func (u *unit) writeMember(f *model.Field) ([]ir.Stmt, error) {
	op := u.member(f)

	switch f.Kind {
	case model.FieldProperty, model.FieldElement:
		return u.ifPresent(f, op, u.writeValue(f, op)...), nil
	case model.FieldList:
		item := ir.Local{Name: u.ctx.Unique("item"), Type: f.Type}

		body := u.writeValue(f, item)
		if f.Type.Optional {
			body = []ir.Stmt{ir.IfPresent{Value: item, Body: body}}
		}

		return u.ifPresent(f, op, ir.ForEach{Value: op, Item: item, Body: body}), nil
	case model.FieldPolymorphic:
		sw, err := u.typeSwitch(f, op)
		if err != nil {
			return nil, err
		}

		return u.ifPresent(f, op, sw), nil
	case model.FieldPolymorphicList:
		item := ir.Local{Name: u.ctx.Unique("item"), Type: f.Type}

		sw, err := u.typeSwitch(f, item)
		if err != nil {
			return nil, err
		}

		body := []ir.Stmt{ir.IfPresent{Value: item, Body: []ir.Stmt{sw}}}

		return u.ifPresent(f, op, ir.ForEach{Value: op, Item: item, Body: body}), nil
	default:
		return nil, fmt.Errorf("member %s: unexpected %s field in write sequence", f.Member, f.Kind)
	}
}

// writeValue emits one child element holding value: delegated to a type adapter for
// user types, begin/text/end for values written as text.
func (u *unit) writeValue(f *model.Field, value ir.Operand) []ir.Stmt {
	expr := u.c.chain.ResolveWrite(f.Type, f.Converter)

	if d, ok := expr.(ir.DelegateWrite); ok {
		if f.Name != u.defaultName(d.Type) {
			d.NameOverride = f.Name
		}

		return []ir.Stmt{ir.WriteChild{Value: value, Expr: d}}
	}

	return []ir.Stmt{
		ir.BeginElement{Name: f.Name},
		u.writeText(f, value),
		ir.EndElement{},
	}
}

// typeSwitch compiles the variant dispatch of a polymorphic field. Cases follow the
// resolver order so that derived types are tested before their ancestors.
func (u *unit) typeSwitch(f *model.Field, value ir.Operand) (ir.TypeSwitch, error) {
	ordered, err := poly.Order(f.Matchers, u.c.hierarchy)
	if err != nil {
		return ir.TypeSwitch{}, fmt.Errorf("member %s: %w", f.Member, err)
	}

	sw := ir.TypeSwitch{
		Value:    value,
		Cases:    make([]ir.TypeCase, 0, len(ordered)),
		Fallback: []ir.Stmt{ir.Raise{Kind: ir.RaiseNoMatchingVariant, Value: value}},
	}

	for _, matcher := range ordered {
		as := ir.Local{
			Name: u.ctx.Unique("variant"),
			Type: model.ValueType{ID: matcher.Type, Optional: true},
		}

		sw.Cases = append(sw.Cases, ir.TypeCase{
			Type: matcher.Type,
			Tag:  matcher.Tag,
			As:   as,
			Body: []ir.Stmt{ir.WriteChild{
				Value: as,
				Expr:  ir.DelegateWrite{Type: matcher.Type, NameOverride: matcher.Tag},
			}},
		})
	}

	return sw, nil
}
