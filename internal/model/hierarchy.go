package model

// Hierarchy answers subtype questions about value types.
type Hierarchy interface {
	// IsSubtype reports whether sub is a strict subtype of super.
	IsSubtype(sub, super TypeID) bool
}

// HierarchyFunc adapts a function to Hierarchy.
type HierarchyFunc func(sub, super TypeID) bool

// IsSubtype implements Hierarchy.
func (f HierarchyFunc) IsSubtype(sub, super TypeID) bool {
	return f(sub, super)
}

// StaticHierarchy is a Hierarchy built from declared supertype edges.
type StaticHierarchy struct {
	parents map[TypeID][]TypeID
}

// NewStaticHierarchy creates an empty StaticHierarchy.
func NewStaticHierarchy() *StaticHierarchy {
	return &StaticHierarchy{parents: make(map[TypeID][]TypeID)}
}

// Declare records that sub directly extends every type in supers.
func (h *StaticHierarchy) Declare(sub TypeID, supers ...TypeID) {
	h.parents[sub] = append(h.parents[sub], supers...)
}

// IsSubtype follows declared edges transitively. Every type is a subtype of Any.
func (h *StaticHierarchy) IsSubtype(sub, super TypeID) bool {
	if sub == super {
		return false
	}

	if super.IsAny() {
		return true
	}

	seen := map[TypeID]bool{sub: true}
	stack := append([]TypeID(nil), h.parents[sub]...)

	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if t == super {
			return true
		}

		if seen[t] {
			continue
		}

		seen[t] = true
		stack = append(stack, h.parents[t]...)
	}

	return false
}

// Assignable reports whether a value of sub may stand where super is declared.
func Assignable(h Hierarchy, sub, super TypeID) bool {
	return sub == super || super.IsAny() || h.IsSubtype(sub, super)
}
