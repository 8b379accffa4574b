package model

import (
	"fmt"

	"xmlbind-generator/internal/common"
)

// AccessKind describes how the underlying member value is read and written.
type AccessKind int

const (
	// AccessField reads and assigns an exported struct member directly.
	AccessField AccessKind = iota
	// AccessMethods goes through a getter/setter method pair.
	AccessMethods
	// AccessConstructor collects the value into a constructor parameter; it is read
	// back for writing through Getter.
	AccessConstructor
)

// String returns a human-readable access kind name.
func (k AccessKind) String() string {
	switch k {
	case AccessField:
		return "field"
	case AccessMethods:
		return "methods"
	case AccessConstructor:
		return "constructor"
	default:
		return common.UnknownStr
	}
}

// Access is the access strategy of a field. Compilers treat it as opaque and only ask
// it for read expressions, write expressions and assignments.
type Access struct {
	Kind   AccessKind
	Member string
	Getter string
	Setter string
	Param  int
}

// FieldAccess returns direct member access.
func FieldAccess(member string) Access {
	return Access{Kind: AccessField, Member: member}
}

// MethodAccess returns getter/setter access.
func MethodAccess(getter, setter string) Access {
	return Access{Kind: AccessMethods, Getter: getter, Setter: setter}
}

// ConstructorAccess returns constructor-parameter access; getter reads the value back.
func ConstructorAccess(param int, getter string) Access {
	return Access{Kind: AccessConstructor, Param: param, Getter: getter}
}

// ReadExpr resolves the expression that yields the current value of the member on recv.
func (a Access) ReadExpr(recv string) string {
	switch a.Kind {
	case AccessMethods, AccessConstructor:
		return fmt.Sprintf("%s.%s()", recv, a.Getter)
	default:
		return recv + "." + a.Member
	}
}

// Assignment resolves the statement that stores value into the member on recv. For
// constructor access the value is stored into the temporary named temp instead.
func (a Access) Assignment(recv, temp, value string) string {
	switch a.Kind {
	case AccessMethods:
		return fmt.Sprintf("%s.%s(%s)", recv, a.Setter, value)
	case AccessConstructor:
		return temp + " = " + value
	default:
		return recv + "." + a.Member + " = " + value
	}
}

// String describes the access strategy for diagnostics.
func (a Access) String() string {
	switch a.Kind {
	case AccessMethods:
		return a.Getter + "/" + a.Setter
	case AccessConstructor:
		return fmt.Sprintf("param[%d]", a.Param)
	default:
		return a.Member
	}
}
