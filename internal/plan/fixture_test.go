package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
)

var (
	itemID   = model.TypeID{PkgPath: "example/rss", Name: "Item"}
	feedID   = model.TypeID{PkgPath: "example/rss", Name: "Feed"}
	guidID   = model.TypeID{PkgPath: "example/rss", Name: "Guid"}
	penID    = model.TypeID{PkgPath: "example/zoo", Name: "Pen"}
	animalID = model.TypeID{PkgPath: "example/zoo", Name: "Animal"}
	dogID    = model.TypeID{PkgPath: "example/zoo", Name: "Dog"}
	catID    = model.TypeID{PkgPath: "example/zoo", Name: "Cat"}
)

func str() model.ValueType { return model.ValueType{ID: model.Builtin("string")} }

func integer() model.ValueType { return model.ValueType{ID: model.Builtin("int")} }

func compileOne(t *testing.T, b *model.Builder, id model.TypeID, h model.Hierarchy, opts Options) *ir.AdapterPlan {
	t.Helper()

	c, err := NewCompiler(b.Build(), h, opts)
	require.NoError(t, err)

	p, err := c.CompileType(id)
	require.NoError(t, err)

	return p
}

func attributeDispatch(t *testing.T, p *ir.AdapterPlan) ir.Dispatch {
	t.Helper()

	loop, ok := p.Read[0].(ir.AttributeLoop)
	require.True(t, ok, "first read statement is %T", p.Read[0])

	return loop.Dispatch
}

func childLoop(t *testing.T, p *ir.AdapterPlan) ir.ChildLoop {
	t.Helper()

	loop, ok := p.Read[1].(ir.ChildLoop)
	require.True(t, ok, "second read statement is %T", p.Read[1])

	return loop
}

func caseNames(d ir.Dispatch) []string {
	names := make([]string, 0, len(d.Cases))
	for _, c := range d.Cases {
		names = append(names, c.Name)
	}

	return names
}
