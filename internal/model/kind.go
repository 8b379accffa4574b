package model

//go:generate go tool stringer -type=ScalarKind -trimprefix=Kind -output=kind_string.go

// ScalarKind is a primitive-like value kind that the converter chain knows how to read
// and write without delegating to a type adapter.
type ScalarKind int

const (
	KindInvalid ScalarKind = iota
	KindString
	KindBool
	KindDouble
	KindInt
	KindLong
)

// scalarSpellings maps every Go spelling of a scalar kind to the kind.
var scalarSpellings = map[string]ScalarKind{
	"string":  KindString,
	"bool":    KindBool,
	"float64": KindDouble,
	"float32": KindDouble,
	"int":     KindInt,
	"int32":   KindInt,
	"int64":   KindLong,
}

// Kinds lists all valid scalar kinds in declaration order.
func Kinds() []ScalarKind {
	return []ScalarKind{KindString, KindBool, KindDouble, KindInt, KindLong}
}

// ScalarKindOf returns the scalar kind spelled by name ("bool", "int64", ...).
func ScalarKindOf(name string) (ScalarKind, bool) {
	k, ok := scalarSpellings[name]
	return k, ok
}

// ParseScalarKind accepts either a Go spelling ("float64") or a kind name ("Double").
func ParseScalarKind(s string) (ScalarKind, bool) {
	if k, ok := scalarSpellings[s]; ok {
		return k, true
	}

	for _, k := range Kinds() {
		if k.String() == s {
			return k, true
		}
	}

	return KindInvalid, false
}

// GoName returns the canonical Go spelling of the kind.
func (k ScalarKind) GoName() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindDouble:
		return "float64"
	case KindInt:
		return "int"
	case KindLong:
		return "int64"
	default:
		return ""
	}
}
