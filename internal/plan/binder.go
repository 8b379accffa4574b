package plan

import (
	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
)

// binders returns one binder plan per placeholder child of el, in declaration order.
func (u *unit) binders(el *model.Element) []*ir.BinderPlan {
	var out []*ir.BinderPlan

	for _, child := range el.Children.All() {
		if child.IsPlaceholder() {
			out = append(out, u.binder(u.m.Element(child.Placeholder)))
		}
	}

	return out
}

// binder compiles the nested binder of a placeholder element. Child handlers read the
// element body only; the binder consumes each child's closing boundary itself.
func (u *unit) binder(el *model.Element) *ir.BinderPlan {
	b := &ir.BinderPlan{Name: el.Name}

	for name, id := range el.Attributes.All() {
		b.Attributes = append(b.Attributes, ir.AttributeHandler{
			Name: name,
			Body: u.readAttribute(u.m.Field(id)),
		})
	}

	for name, child := range el.Children.All() {
		if child.IsPlaceholder() {
			b.Children = append(b.Children, ir.ChildHandler{
				Name:   name,
				Nested: u.binder(u.m.Element(child.Placeholder)),
			})

			continue
		}

		b.Children = append(b.Children, ir.ChildHandler{
			Name: name,
			Body: u.readChild(u.m.Field(child.Field)),
		})
	}

	return b
}
