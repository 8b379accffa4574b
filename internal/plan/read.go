package plan

import (
	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
)

// read compiles the read program of a type root: attributes, then children, then the
// constructor call when the type collects its values into temporaries.
func (u *unit) read(root *model.Element) []ir.Stmt {
	stmts := []ir.Stmt{u.attributeLoop(root), u.childLoop(root)}

	if u.decl.UsesConstructor() {
		params := make([]string, u.decl.Params)
		for param, t := range u.temps {
			params[param] = t.Name
		}

		stmts = append(stmts, ir.Construct{Func: u.decl.Constructor, Params: params})
	}

	return stmts
}

func dispatch(subject ir.Subject, cases []ir.Case, fallback []ir.Stmt) ir.Dispatch {
	return ir.Dispatch{
		Subject:  subject,
		Strategy: ir.StrategyFor(len(cases)),
		Cases:    cases,
		Default:  fallback,
	}
}

func (u *unit) attributeLoop(el *model.Element) ir.AttributeLoop {
	cases := make([]ir.Case, 0, el.Attributes.Len())

	for name, id := range el.Attributes.All() {
		cases = append(cases, ir.Case{Name: name, Body: u.readAttribute(u.m.Field(id))})
	}

	return ir.AttributeLoop{
		Dispatch: dispatch(ir.SubjectAttribute, cases, []ir.Stmt{ir.Unmapped{Subject: ir.SubjectAttribute}}),
	}
}

func (u *unit) readAttribute(f *model.Field) []ir.Stmt {
	return []ir.Stmt{ir.Assign{
		Target: u.readTarget(f),
		Value:  u.c.chain.ResolveRead(f.Type, f.Converter, ir.SourceAttribute),
	}}
}

// childLoop compiles element dispatch. Inline children get a case each; placeholders
// are reached through the binder registry from the default branch.
func (u *unit) childLoop(el *model.Element) ir.ChildLoop {
	var (
		cases  []ir.Case
		nested bool
	)

	for name, child := range el.Children.All() {
		if child.IsPlaceholder() {
			nested = true
			continue
		}

		body := append(u.readChild(u.m.Field(child.Field)), ir.ConsumeEnd{})
		cases = append(cases, ir.Case{Name: name, Body: body})
	}

	fallback := []ir.Stmt{ir.Unmapped{Subject: ir.SubjectElement}}
	if nested {
		fallback = []ir.Stmt{ir.BinderLookup{Fallback: fallback}}
	}

	loop := ir.ChildLoop{
		Elements: dispatch(ir.SubjectElement, cases, fallback),
		Text:     []ir.Stmt{ir.SkipText{}},
	}

	if el.Text != model.NoField {
		f := u.m.Field(el.Text)
		loop.Text = []ir.Stmt{ir.Assign{
			Target: u.readTarget(f),
			Value:  u.c.chain.ResolveRead(f.Type, f.Converter, ir.SourceText),
		}}
	}

	return loop
}

// readChild compiles the read of one child element whose start has been consumed.
// Values read from text ignore the element's own attributes first.
func (u *unit) readChild(f *model.Field) []ir.Stmt {
	value := u.c.chain.ResolveRead(f.Type, f.Converter, ir.SourceText)

	var stmts []ir.Stmt
	if _, ok := value.(ir.DelegateRead); !ok {
		stmts = append(stmts, ir.IgnoreAttributes{})
	}

	target := u.readTarget(f)
	if target.Sequence {
		return append(stmts, ir.Append{Target: target, Value: value})
	}

	return append(stmts, ir.Assign{Target: target, Value: value})
}
