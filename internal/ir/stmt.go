package ir

import (
	"xmlbind-generator/internal/common"
	"xmlbind-generator/internal/model"
)

// Stmt is a single IR statement.
type Stmt interface {
	stmt()
}

// Subject distinguishes attribute dispatch from element dispatch.
type Subject int

const (
	SubjectAttribute Subject = iota
	SubjectElement
)

// String returns a human-readable subject name.
func (s Subject) String() string {
	switch s {
	case SubjectAttribute:
		return "attribute"
	case SubjectElement:
		return "element"
	default:
		return common.UnknownStr
	}
}

// Strategy is the branching strategy of a dispatch.
type Strategy int

const (
	// StrategyNone has no cases; every name goes to the default branch.
	StrategyNone Strategy = iota
	// StrategySingle is one name-equality test with an else branch.
	StrategySingle
	// StrategyTable is a name-keyed multi-way branch without fallthrough.
	StrategyTable
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategySingle:
		return "single"
	case StrategyTable:
		return "table"
	default:
		return common.UnknownStr
	}
}

// StrategyFor picks the strategy for n cases.
func StrategyFor(n int) Strategy {
	switch {
	case n == 0:
		return StrategyNone
	case n == 1:
		return StrategySingle
	default:
		return StrategyTable
	}
}

// Case is a named dispatch branch.
type Case struct {
	Name string
	Body []Stmt
}

// Dispatch routes the current attribute or element name to a case body.
type Dispatch struct {
	Subject  Subject
	Strategy Strategy
	Cases    []Case
	Default  []Stmt
}

// AttributeLoop consumes every attribute of the current element through Dispatch.
type AttributeLoop struct {
	Dispatch Dispatch
}

// ChildLoop consumes every child of the current element: elements go through Elements
// (the loop has already begun the element and read its name), text goes through Text.
type ChildLoop struct {
	Elements Dispatch
	Text     []Stmt
}

// Assign stores a read value into a member.
type Assign struct {
	Target Target
	Value  ReadExpr
}

// Append adds a read value to a sequence member, allocating it on first use.
type Append struct {
	Target Target
	Value  ReadExpr
}

// IgnoreAttributes consumes the current element's attributes under the unmapped policy.
type IgnoreAttributes struct{}

// SkipText discards the current text token.
type SkipText struct{}

// Unmapped applies the unmapped-input policy to the current attribute or element.
type Unmapped struct {
	Subject Subject
}

// BinderLookup resolves the current element name in the adapter's child binder
// registry, runs the binder and consumes the closing boundary; names without a binder
// fall to Fallback.
type BinderLookup struct {
	Fallback []Stmt
}

// ConsumeEnd consumes the closing boundary of the current child element.
type ConsumeEnd struct{}

// Construct builds the value from constructor temporaries.
type Construct struct {
	Func   string
	Params []string
}

// BeginElement opens an element. When Overridable is set, a non-empty name override
// passed to the adapter wins over Name.
type BeginElement struct {
	Name        string
	Overridable bool
}

// EndElement closes the innermost open element.
type EndElement struct{}

// WriteAttribute emits one attribute.
type WriteAttribute struct {
	Name  string
	Value Operand
	Expr  WriteExpr
}

// WriteText emits text content, as CDATA when requested.
type WriteText struct {
	Value Operand
	Expr  WriteExpr
	CData bool
}

// WriteChild delegates a value to a type adapter.
type WriteChild struct {
	Value Operand
	Expr  DelegateWrite
}

// Presence selects how IfPresent decides a value is present.
type Presence int

const (
	// PresenceNonNil treats nil pointers, interfaces and slices as absent.
	PresenceNonNil Presence = iota
	// PresenceNonZero additionally treats zero values as absent.
	PresenceNonZero
)

// IfPresent runs Body only when Value is present.
type IfPresent struct {
	Value    Operand
	Presence Presence
	Body     []Stmt
}

// ForEach runs Body once per item of a sequence, binding the item to Item.
type ForEach struct {
	Value Operand
	Item  Local
	Body  []Stmt
}

// TypeCase is one branch of a TypeSwitch.
type TypeCase struct {
	Type model.TypeID
	Tag  string
	// As binds the value narrowed to Type inside Body.
	As   Local
	Body []Stmt
}

// TypeSwitch tests the runtime type of Value against Cases in order; the first match
// wins. Fallback runs when nothing matches.
type TypeSwitch struct {
	Value    Operand
	Cases    []TypeCase
	Fallback []Stmt
}

// RaiseKind identifies a runtime failure raised by generated logic.
type RaiseKind int

const (
	RaiseNoMatchingVariant RaiseKind = iota
)

// Raise fails the current call.
type Raise struct {
	Kind  RaiseKind
	Value Operand
}

func (AttributeLoop) stmt()    {}
func (ChildLoop) stmt()        {}
func (Dispatch) stmt()         {}
func (Assign) stmt()           {}
func (Append) stmt()           {}
func (IgnoreAttributes) stmt() {}
func (SkipText) stmt()         {}
func (Unmapped) stmt()         {}
func (BinderLookup) stmt()     {}
func (ConsumeEnd) stmt()       {}
func (Construct) stmt()        {}
func (BeginElement) stmt()     {}
func (EndElement) stmt()       {}
func (WriteAttribute) stmt()   {}
func (WriteText) stmt()        {}
func (WriteChild) stmt()       {}
func (IfPresent) stmt()        {}
func (ForEach) stmt()          {}
func (TypeSwitch) stmt()       {}
func (Raise) stmt()            {}

// Temp is a constructor temporary.
type Temp struct {
	Name  string
	Param int
	Type  model.ValueType
	// Sequence marks a slice of Type.
	Sequence bool
}

// AttributeHandler reads one attribute for a binder.
type AttributeHandler struct {
	Name string
	Body []Stmt
}

// ChildHandler reads one child element for a binder: either Body for a field or Nested
// for a deeper placeholder.
type ChildHandler struct {
	Name   string
	Body   []Stmt
	Nested *BinderPlan
}

// BinderPlan is a nested child element binder for one placeholder element.
type BinderPlan struct {
	Name       string
	Attributes []AttributeHandler
	Children   []ChildHandler
}

// AdapterPlan is the compiled read/write logic of one declared type.
type AdapterPlan struct {
	Type    model.TypeID
	XMLName string
	// Value is the local bound to the value (or constructor holder) being read or written.
	Value       string
	Constructor string
	Temps       []Temp
	Read        []Stmt
	Write       []Stmt
	// Binders is the child binder registry keyed by placeholder name, in declaration order.
	Binders []*BinderPlan
}

// Walk visits every statement of stmts depth-first, including nested bodies and binder
// handlers reachable from them. fn returning false prunes the subtree.
func Walk(stmts []Stmt, fn func(Stmt) bool) {
	for _, s := range stmts {
		if !fn(s) {
			continue
		}

		for _, body := range children(s) {
			Walk(body, fn)
		}
	}
}

// WalkPlan visits all read, write and binder statements of p.
func WalkPlan(p *AdapterPlan, fn func(Stmt) bool) {
	Walk(p.Read, fn)
	Walk(p.Write, fn)

	for _, b := range p.Binders {
		walkBinder(b, fn)
	}
}

func walkBinder(b *BinderPlan, fn func(Stmt) bool) {
	for _, a := range b.Attributes {
		Walk(a.Body, fn)
	}

	for _, c := range b.Children {
		Walk(c.Body, fn)

		if c.Nested != nil {
			walkBinder(c.Nested, fn)
		}
	}
}

func children(s Stmt) [][]Stmt {
	switch n := s.(type) {
	case AttributeLoop:
		return dispatchBodies(n.Dispatch)
	case ChildLoop:
		return append(dispatchBodies(n.Elements), n.Text)
	case Dispatch:
		return dispatchBodies(n)
	case BinderLookup:
		return [][]Stmt{n.Fallback}
	case IfPresent:
		return [][]Stmt{n.Body}
	case ForEach:
		return [][]Stmt{n.Body}
	case TypeSwitch:
		out := make([][]Stmt, 0, len(n.Cases)+1)
		for _, c := range n.Cases {
			out = append(out, c.Body)
		}

		return append(out, n.Fallback)
	default:
		return nil
	}
}

func dispatchBodies(d Dispatch) [][]Stmt {
	out := make([][]Stmt, 0, len(d.Cases)+1)
	for _, c := range d.Cases {
		out = append(out, c.Body)
	}

	return append(out, d.Default)
}

// Uses reports whether any statement of p satisfies pred.
func Uses(p *AdapterPlan, pred func(Stmt) bool) bool {
	found := false

	WalkPlan(p, func(s Stmt) bool {
		if pred(s) {
			found = true
		}

		return !found
	})

	return found
}

// TypeRefs returns every type the plan delegates to, in first-use order.
func TypeRefs(p *AdapterPlan) []model.TypeID {
	var out []model.TypeID

	seen := make(map[model.TypeID]bool)
	add := func(id model.TypeID) {
		if !id.IsZero() && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	WalkPlan(p, func(s Stmt) bool {
		switch n := s.(type) {
		case Assign:
			if d, ok := n.Value.(DelegateRead); ok {
				add(d.Type)
			}
		case Append:
			if d, ok := n.Value.(DelegateRead); ok {
				add(d.Type)
			}
		case WriteChild:
			add(n.Expr.Type)
		case TypeSwitch:
			for _, c := range n.Cases {
				add(c.Type)
			}
		}

		return true
	})

	return out
}
