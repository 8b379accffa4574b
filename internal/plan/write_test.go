package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
	"xmlbind-generator/internal/poly"
)

func zoo() *model.StaticHierarchy {
	h := model.NewStaticHierarchy()
	h.Declare(dogID, animalID)
	h.Declare(catID, animalID)

	return h
}

func TestWrite_OrderAndPresence(t *testing.T) {
	b := model.NewBuilder()
	item := b.Type(itemID, "item")
	item.Attribute("id", integer(), model.FieldAccess("ID"))
	item.Attribute("lang", model.ValueType{ID: model.Builtin("string"), Optional: true}, model.FieldAccess("Lang"))
	item.Attribute("rank", integer(), model.FieldAccess("Rank"), model.WithOmitEmpty())
	item.Property("title", str(), model.FieldAccess("Title"), model.WithCData())
	item.Element("guid", model.ValueType{ID: guidID, Optional: true}, model.FieldAccess("Guid"))
	item.Element("permalink", model.ValueType{ID: guidID, Optional: true}, model.FieldAccess("Permalink"))
	item.List("category", str(), model.FieldAccess("Categories"))
	b.Type(guidID, "guid")

	p := compileOne(t, b, itemID, nil, Options{})

	assert.Equal(t, `begin "item" or override
attribute "id" = value.ID as Int
if present value.Lang {
  attribute "lang" = value.Lang as String
}
if non-zero value.Rank {
  attribute "rank" = value.Rank as Int
}
begin "title"
cdata value.Title as String
end
if present value.Guid {
  child value.Guid via example/rss.Guid
}
if present value.Permalink {
  child value.Permalink via example/rss.Guid as "permalink"
}
if present value.Categories {
  for item0 in value.Categories {
    begin "category"
    text item0 as String
    end
  }
}
end
`, ir.Format(p.Write))
}

func TestWrite_TextAndConverters(t *testing.T) {
	b := model.NewBuilder()
	guid := b.Type(guidID, "guid")
	guid.Attribute("isPermaLink", model.ValueType{ID: model.Builtin("bool")}, model.FieldAccess("IsPermaLink"),
		model.WithConverter("yesno"))
	guid.Text(model.ValueType{ID: model.Builtin("bool")}, model.FieldAccess("Value"), model.WithCData())

	p := compileOne(t, b, guidID, nil, Options{PrimitiveConverters: []model.ScalarKind{model.KindBool}})

	assert.Equal(t, `begin "guid" or override
attribute "isPermaLink" = value.IsPermaLink with "yesno"
text value.Value with bool
end
`, ir.Format(p.Write), "cdata only applies to string values")
}

func TestWrite_Placeholders(t *testing.T) {
	b := model.NewBuilder()
	feed := b.Type(feedID, "rss")
	feed.Property("version", str(), model.FieldAccess("Version"))
	feed.Property("title", str(), model.FieldAccess("Title"), model.WithPath("channel"))
	feed.Attribute("href", str(), model.FieldAccess("Href"), model.WithPath("channel", "link"))

	p := compileOne(t, b, feedID, nil, Options{})

	assert.Equal(t, `begin "rss" or override
begin "version"
text value.Version as String
end
begin "channel"
begin "title"
text value.Title as String
end
begin "link"
attribute "href" = value.Href as String
end
end
end
`, ir.Format(p.Write))
}

func TestWrite_Polymorphic(t *testing.T) {
	b := model.NewBuilder()
	pen := b.Type(penID, "pen")
	pen.Polymorphic(model.ValueType{ID: animalID}, model.FieldAccess("Animal"),
		[]model.Matcher{{Tag: "dog", Type: dogID}, {Tag: "cat", Type: catID}})

	p := compileOne(t, b, penID, zoo(), Options{})

	assert.Equal(t, `begin "pen" or override
if present value.Animal {
  switch type value.Animal {
  case example/zoo.Dog as "dog":
    child variant0 via example/zoo.Dog as "dog"
  case example/zoo.Cat as "cat":
    child variant1 via example/zoo.Cat as "cat"
  default:
    raise no matching variant value.Animal
  }
}
end
`, ir.Format(p.Write))
}

func TestWrite_PolymorphicList(t *testing.T) {
	b := model.NewBuilder()
	pen := b.Type(penID, "pen")
	pen.PolymorphicList(model.ValueType{ID: animalID}, model.FieldAccess("Animals"),
		[]model.Matcher{{Tag: "cat", Type: catID}})

	p := compileOne(t, b, penID, zoo(), Options{})

	assert.Equal(t, `begin "pen" or override
if present value.Animals {
  for item0 in value.Animals {
    if present item0 {
      switch type item0 {
      case example/zoo.Cat as "cat":
        child variant0 via example/zoo.Cat as "cat"
      default:
        raise no matching variant item0
      }
    }
  }
}
end
`, ir.Format(p.Write))
}

func TestWrite_PolymorphicOrder(t *testing.T) {
	base := model.TypeID{PkgPath: "example/shapes", Name: "Base"}
	mid := model.TypeID{PkgPath: "example/shapes", Name: "Mid"}
	leaf := model.TypeID{PkgPath: "example/shapes", Name: "Leaf"}

	h := model.NewStaticHierarchy()
	h.Declare(mid, base)
	h.Declare(leaf, mid)

	b := model.NewBuilder()
	holder := b.Type(penID, "holder")
	holder.Polymorphic(model.ValueType{ID: base}, model.FieldAccess("Shape"), []model.Matcher{
		{Tag: "base", Type: base},
		{Tag: "leaf", Type: leaf},
		{Tag: "mid", Type: mid},
	})

	p := compileOne(t, b, penID, h, Options{})

	require.Len(t, p.Write, 3)
	present, ok := p.Write[1].(ir.IfPresent)
	require.True(t, ok)
	sw, ok := present.Body[0].(ir.TypeSwitch)
	require.True(t, ok)

	var order []model.TypeID
	for _, c := range sw.Cases {
		order = append(order, c.Type)
	}

	assert.Equal(t, []model.TypeID{leaf, mid, base}, order)
	assert.Equal(t, []ir.Stmt{ir.Raise{Kind: ir.RaiseNoMatchingVariant, Value: present.Value}}, sw.Fallback)

	// Reading still dispatches by tag, in declaration order.
	loop := childLoop(t, p)
	assert.Equal(t, []string{"base", "leaf", "mid"}, caseNames(loop.Elements))
}

func TestWrite_AmbiguousHierarchyFailsType(t *testing.T) {
	cyclic := model.HierarchyFunc(func(sub, super model.TypeID) bool {
		return super == animalID || (sub == dogID && super == catID) || (sub == catID && super == dogID)
	})

	b := model.NewBuilder()
	pen := b.Type(penID, "pen")
	pen.Polymorphic(model.ValueType{ID: animalID}, model.FieldAccess("Animal"),
		[]model.Matcher{{Tag: "dog", Type: dogID}, {Tag: "cat", Type: catID}})
	b.Type(itemID, "item").Attribute("id", integer(), model.FieldAccess("ID"))

	c, err := NewCompiler(b.Build(), cyclic, Options{})
	require.NoError(t, err)

	_, err = c.CompileType(penID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, poly.ErrAmbiguousPolymorphicMapping))
	assert.Contains(t, err.Error(), "Animal")

	_, err = c.CompileType(itemID)
	assert.NoError(t, err)
}
