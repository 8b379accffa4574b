package common

// UnknownStr is returned by String methods for values outside their enum.
const UnknownStr = "unknown"

// Cardinality classifies a collection as empty, single or multiple.
type Cardinality int

const (
	CardinalityNone Cardinality = iota
	CardinalityOne
	CardinalityMany
)

// String returns a human-readable cardinality name.
func (c Cardinality) String() string {
	switch c {
	case CardinalityNone:
		return "none"
	case CardinalityOne:
		return "one"
	case CardinalityMany:
		return "many"
	default:
		return UnknownStr
	}
}

// CardinalityOf reports whether s holds zero, one or more elements.
func CardinalityOf[S ~[]E, E any](s S) Cardinality {
	switch {
	case IsEmpty(s):
		return CardinalityNone
	case IsSingle(s):
		return CardinalityOne
	default:
		return CardinalityMany
	}
}

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// IsSingle returns true if the slice has exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// IsMultiple returns true if the slice has more than one element.
func IsMultiple[S ~[]E, E any](s S) bool {
	return len(s) > 1
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}
