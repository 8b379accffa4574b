package model

import (
	"fmt"

	"xmlbind-generator/internal/diagnostic"
)

// Link is the single linking pass: every polymorphic field receives one substitution
// field per matcher, registered among its parent's children under the matcher tag.
// It must run exactly once, before any dispatch compilation.
func (m *Model) Link() error {
	if m.linked {
		return ErrAlreadyLinked
	}

	m.linked = true

	count := len(m.Fields)
	for i := range count {
		f := m.Field(FieldID(i))
		if !f.Kind.IsPolymorphic() {
			continue
		}

		kind := FieldSubstitution
		if f.Kind == FieldPolymorphicList {
			kind = FieldSubstitutionList
		}

		poly := *f
		subs := make([]FieldID, 0, len(poly.Matchers))

		for _, matcher := range poly.Matchers {
			sub := Field{
				ID:     FieldID(len(m.Fields)),
				Kind:   kind,
				Name:   matcher.Tag,
				Member: poly.Member,
				Type:   ValueType{ID: matcher.Type, Optional: true},
				Access: poly.Access,
				Origin: poly.ID,
				Owner:  poly.Owner,
				Parent: poly.Parent,
			}
			m.Fields = append(m.Fields, sub)

			el := m.Element(poly.Parent)
			if !el.Children.Put(sub.Name, Child{Field: sub.ID, Placeholder: NoElement}) {
				m.diagnostics.AddError(diagnostic.CodeDuplicateName,
					fmt.Sprintf("polymorphic tag %q of member %s collides with a sibling element", sub.Name, poly.Member),
					poly.Owner.String(), m.ElementPath(el.ID))

				continue
			}

			subs = append(subs, sub.ID)
		}

		m.Field(poly.ID).Substitutions = subs
	}

	return nil
}
