package ir

import (
	"xmlbind-generator/internal/common"
	"xmlbind-generator/internal/model"
)

// Source is the token a scalar value is read from.
type Source int

const (
	SourceAttribute Source = iota
	SourceText
)

// String returns a human-readable source name.
func (s Source) String() string {
	switch s {
	case SourceAttribute:
		return "attribute"
	case SourceText:
		return "text"
	default:
		return common.UnknownStr
	}
}

// ReadExpr produces a value from the token stream.
type ReadExpr interface {
	readExpr()
}

// ScalarRead uses a typed accessor of the reader; no converter is involved.
type ScalarRead struct {
	Source Source
	Kind   model.ScalarKind
}

// ConverterRead passes the raw token to a converter. Converter names a custom converter;
// when empty, the built-in converter registered for Type is used. Invocations are always
// guarded: converter-not-found errors propagate unchanged, others become conversion errors.
type ConverterRead struct {
	Source    Source
	Converter string
	Type      model.TypeID
}

// DelegateRead reads a nested element through the type adapter of Type.
type DelegateRead struct {
	Type model.TypeID
}

func (ScalarRead) readExpr()    {}
func (ConverterRead) readExpr() {}
func (DelegateRead) readExpr()  {}

// WriteExpr turns a value into output.
type WriteExpr interface {
	writeExpr()
}

// ScalarWrite formats the value with the typed formatter of Kind.
type ScalarWrite struct {
	Kind model.ScalarKind
}

// ConverterWrite formats the value through a converter, guarded like ConverterRead.
type ConverterWrite struct {
	Converter string
	Type      model.TypeID
}

// DelegateWrite writes the value through the type adapter of Type. NameOverride, when
// set, replaces the adapter's default element name.
type DelegateWrite struct {
	Type         model.TypeID
	NameOverride string
}

func (ScalarWrite) writeExpr()    {}
func (ConverterWrite) writeExpr() {}
func (DelegateWrite) writeExpr()  {}

// IsGuarded reports whether evaluating e invokes a converter.
func IsGuarded(e any) bool {
	switch e.(type) {
	case ConverterRead, ConverterWrite:
		return true
	default:
		return false
	}
}

// Target is a member of the value being read or written.
type Target struct {
	Field  model.FieldID
	Name   string
	Access model.Access
	Type   model.ValueType
	// Sequence marks list members; Type is then the item type.
	Sequence bool
	// Temp is the constructor temporary backing the member, if any.
	Temp string
}

// Operand is a value available to write statements.
type Operand interface {
	operand()
}

// MemberOf is the current value of a member of the local Recv.
type MemberOf struct {
	Recv   string
	Target Target
}

// Local is a local variable such as a loop item.
type Local struct {
	Name string
	Type model.ValueType
}

func (MemberOf) operand() {}
func (Local) operand()    {}

// TypeOf returns the static value type of an operand.
func TypeOf(op Operand) model.ValueType {
	switch o := op.(type) {
	case MemberOf:
		return o.Target.Type
	case Local:
		return o.Type
	default:
		return model.ValueType{}
	}
}
