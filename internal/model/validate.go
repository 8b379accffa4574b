package model

import (
	"fmt"

	"xmlbind-generator/internal/diagnostic"
	"xmlbind-generator/internal/match"
)

// Validate checks the model invariants and returns every diagnostic collected while
// building and linking, plus those found now. Errors are attached to the offending
// type so callers can abort that type only.
func (m *Model) Validate(h Hierarchy) diagnostic.Diagnostics {
	var d diagnostic.Diagnostics
	d.Merge(m.diagnostics)

	for i := range m.Fields {
		f := &m.Fields[i]
		path := m.ElementPath(f.Parent)
		owner := f.Owner.String()

		switch f.Kind {
		case FieldPolymorphic, FieldPolymorphicList:
			m.validateMatchers(&d, f, h, owner, path)
		case FieldElement, FieldList:
			if f.Type.ID.IsZero() {
				d.AddError(diagnostic.CodeInvalidField,
					fmt.Sprintf("member %s has no value type", f.Member), owner, path)

				continue
			}

			if !f.Type.IsScalar() {
				if _, ok := m.Type(f.Type.ID); !ok {
					d.AddWarning(diagnostic.CodeUnknownType,
						fmt.Sprintf("type %s of member %s is not declared; its adapter must be registered at runtime%s",
							f.Type.ID, f.Member, match.DidYouMean(f.Type.ID.String(), m.typeNames())), owner, path)
				}
			}
		case FieldAttribute, FieldProperty, FieldText:
			if !f.Type.IsScalar() && f.Converter == "" {
				d.AddError(diagnostic.CodeInvalidField,
					fmt.Sprintf("member %s of type %s needs a converter to be read as text", f.Member, f.Type),
					owner, path)
			}
		}

		if f.Kind != FieldText && !f.IsSubstitution() && !f.Kind.IsPolymorphic() && f.Name == "" {
			d.AddError(diagnostic.CodeInvalidField,
				fmt.Sprintf("member %s has no XML name", f.Member), owner, path)
		}
	}

	for i := range m.Types {
		m.validateConstructor(&d, &m.Types[i])
	}

	return d
}

func (m *Model) validateMatchers(d *diagnostic.Diagnostics, f *Field, h Hierarchy, owner, path string) {
	if len(f.Matchers) == 0 {
		d.AddError(diagnostic.CodeEmptyMatchers,
			fmt.Sprintf("polymorphic member %s declares no matchers", f.Member), owner, path)

		return
	}

	tags := make(map[string]bool, len(f.Matchers))
	types := make(map[TypeID]bool, len(f.Matchers))

	for _, matcher := range f.Matchers {
		if tags[matcher.Tag] {
			d.AddError(diagnostic.CodeDuplicateMatcher,
				fmt.Sprintf("tag %q is mapped twice in member %s", matcher.Tag, f.Member), owner, path)
		}

		if types[matcher.Type] {
			d.AddError(diagnostic.CodeDuplicateMatcher,
				fmt.Sprintf("type %s is mapped twice in member %s", matcher.Type, f.Member), owner, path)
		}

		tags[matcher.Tag] = true
		types[matcher.Type] = true

		if h != nil && !Assignable(h, matcher.Type, f.Type.ID) {
			d.AddError(diagnostic.CodeNotASubtype,
				fmt.Sprintf("type %s of tag %q is not a subtype of %s", matcher.Type, matcher.Tag, f.Type.ID),
				owner, path)
		}
	}
}

func (m *Model) validateConstructor(d *diagnostic.Diagnostics, t *TypeDecl) {
	owner := t.ID.String()
	seen := make(map[int]bool)

	for i := range m.Fields {
		f := &m.Fields[i]
		if f.Owner != t.ID || f.IsSubstitution() {
			continue
		}

		isParam := f.Access.Kind == AccessConstructor
		switch {
		case t.UsesConstructor() && !isParam:
			d.AddError(diagnostic.CodeConstructorMismatch,
				fmt.Sprintf("member %s must be a constructor parameter", f.Member), owner, "")
		case !t.UsesConstructor() && isParam:
			d.AddError(diagnostic.CodeConstructorMismatch,
				fmt.Sprintf("member %s is a constructor parameter but %s has no constructor", f.Member, t.ID),
				owner, "")
		case isParam && (f.Access.Param < 0 || f.Access.Param >= t.Params || seen[f.Access.Param]):
			d.AddError(diagnostic.CodeConstructorMismatch,
				fmt.Sprintf("member %s uses invalid constructor parameter %d", f.Member, f.Access.Param),
				owner, "")
		case isParam:
			seen[f.Access.Param] = true
		}
	}

	for param := range t.Params {
		if !seen[param] {
			d.AddError(diagnostic.CodeConstructorMismatch,
				fmt.Sprintf("constructor %s parameter %d is not bound to a member", t.Constructor, param),
				owner, "")
		}
	}
}

func (m *Model) typeNames() []string {
	ids := m.TypeIDs()

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, id.String())
	}

	return names
}
