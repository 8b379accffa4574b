package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmlbind-generator/internal/diagnostic"
)

var (
	feedID   = TypeID{PkgPath: "example/rss", Name: "Feed"}
	itemID   = TypeID{PkgPath: "example/rss", Name: "Item"}
	animalID = TypeID{PkgPath: "example/zoo", Name: "Animal"}
	dogID    = TypeID{PkgPath: "example/zoo", Name: "Dog"}
	catID    = TypeID{PkgPath: "example/zoo", Name: "Cat"}
	rockID   = TypeID{PkgPath: "example/zoo", Name: "Rock"}
)

func stringType() ValueType { return ValueType{ID: Builtin("string")} }

func zooHierarchy() *StaticHierarchy {
	h := NewStaticHierarchy()
	h.Declare(dogID, animalID)
	h.Declare(catID, animalID)

	return h
}

func TestBuilder_AttributesAndChildrenKeepDeclarationOrder(t *testing.T) {
	b := NewBuilder()
	feed := b.Type(feedID, "rss")
	feed.Attribute("version", ValueType{ID: Builtin("float64")}, FieldAccess("Version"))
	feed.Attribute("lang", stringType(), FieldAccess("Lang"))
	feed.Property("title", stringType(), FieldAccess("Title"))
	feed.List("item", ValueType{ID: itemID}, FieldAccess("Items"))
	b.Type(itemID, "item")

	m := b.Build()
	decl, ok := m.Type(feedID)
	require.True(t, ok)

	root := m.Root(decl)
	assert.Equal(t, "rss", root.Name)
	assert.Equal(t, []string{"version", "lang"}, root.Attributes.Keys())
	assert.Equal(t, []string{"title", "item"}, root.Children.Keys())
	assert.Len(t, root.Members, 2)
	assert.False(t, root.IsPlaceholder())

	d := m.Validate(NewStaticHierarchy())
	assert.True(t, d.IsValid(), d.Error())
	assert.Equal(t, []TypeID{feedID, itemID}, m.TypeIDs())
}

func TestBuilder_DuplicateSiblingNames(t *testing.T) {
	b := NewBuilder()
	feed := b.Type(feedID, "rss")
	feed.Attribute("id", stringType(), FieldAccess("ID"))
	feed.Attribute("id", stringType(), FieldAccess("OtherID"))
	feed.Property("title", stringType(), FieldAccess("Title"))
	feed.Element("title", ValueType{ID: itemID}, FieldAccess("TitleItem"))

	d := b.Build().Validate(nil)
	require.Len(t, d.Errors, 2)
	assert.Equal(t, diagnostic.CodeDuplicateName, d.Errors[0].Code)
	assert.Contains(t, d.Errors[0].Message, `duplicate attribute "id"`)
	assert.Contains(t, d.Errors[1].Message, `duplicate element "title"`)
	assert.Len(t, d.ForType(feedID.String()), 2)
}

func TestBuilder_AttributeAndElementMayShareName(t *testing.T) {
	b := NewBuilder()
	feed := b.Type(feedID, "rss")
	feed.Attribute("title", stringType(), FieldAccess("TitleAttr"))
	feed.Property("title", stringType(), FieldAccess("Title"))

	d := b.Build().Validate(nil)
	assert.True(t, d.IsValid())
}

func TestBuilder_PathCreatesPlaceholders(t *testing.T) {
	b := NewBuilder()
	feed := b.Type(feedID, "rss")
	feed.Property("title", stringType(), FieldAccess("Title"), WithPath("channel"))
	feed.Attribute("href", stringType(), FieldAccess("Href"), WithPath("channel", "link"))
	feed.Property("description", stringType(), FieldAccess("Description"), WithPath("channel"))

	m := b.Build()
	decl, _ := m.Type(feedID)
	root := m.Root(decl)

	require.Equal(t, []string{"channel"}, root.Children.Keys())
	channelChild, _ := root.Children.Get("channel")
	require.True(t, channelChild.IsPlaceholder())

	channel := m.Element(channelChild.Placeholder)
	assert.True(t, channel.IsPlaceholder())
	assert.Equal(t, []string{"title", "link", "description"}, channel.Children.Keys())
	assert.Equal(t, "rss/channel", m.ElementPath(channel.ID))

	linkChild, _ := channel.Children.Get("link")
	link := m.Element(linkChild.Placeholder)
	assert.Equal(t, []string{"href"}, link.Attributes.Keys())
	assert.Equal(t, "rss/channel/link", m.ElementPath(link.ID))
}

func TestBuilder_PathCollidingWithField(t *testing.T) {
	b := NewBuilder()
	feed := b.Type(feedID, "rss")
	feed.Property("channel", stringType(), FieldAccess("Channel"))
	feed.Property("title", stringType(), FieldAccess("Title"), WithPath("channel"))

	d := b.Build().Validate(nil)
	require.True(t, d.HasErrors())
	assert.True(t, d.HasCode(diagnostic.CodeDuplicateName))
}

func TestBuilder_TextContentOnlyOnce(t *testing.T) {
	b := NewBuilder()
	item := b.Type(itemID, "guid")
	item.Text(stringType(), FieldAccess("Value"))
	item.Text(stringType(), FieldAccess("Other"))

	d := b.Build().Validate(nil)
	assert.True(t, d.HasCode(diagnostic.CodeDuplicateName))
}

func TestBuilder_TextContentBelowPath(t *testing.T) {
	b := NewBuilder()
	item := b.Type(itemID, "item")
	item.Text(stringType(), FieldAccess("Value"), WithPath("inner"))

	m := b.Build()
	d := m.Validate(nil)
	assert.True(t, d.HasCode(diagnostic.CodeUnsupportedTag))
	assert.Equal(t, NoField, m.Element(1).Text)
}

func TestField_Nullable(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  bool
	}{
		{"plain scalar", Field{Kind: FieldAttribute, Type: stringType()}, false},
		{"pointer scalar", Field{Kind: FieldAttribute, Type: ValueType{ID: Builtin("int"), Optional: true}}, true},
		{"omitempty scalar", Field{Kind: FieldAttribute, Type: stringType(), OmitEmpty: true}, true},
		{"struct value", Field{Kind: FieldElement, Type: ValueType{ID: itemID}}, false},
		{"struct pointer", Field{Kind: FieldElement, Type: ValueType{ID: itemID, Optional: true}}, true},
		{"any element", Field{Kind: FieldElement, Type: ValueType{ID: Any}}, true},
		{"list", Field{Kind: FieldList, Type: ValueType{ID: itemID}}, true},
		{"polymorphic", Field{Kind: FieldPolymorphic, Type: ValueType{ID: animalID}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field.Nullable())
		})
	}
}

func TestLink_CreatesSubstitutionsInPlace(t *testing.T) {
	b := NewBuilder()
	pen := b.Type(feedID, "pen")
	pen.Property("name", stringType(), FieldAccess("Name"))
	poly := pen.Polymorphic(ValueType{ID: animalID}, FieldAccess("Animal"),
		[]Matcher{{Tag: "dog", Type: dogID}, {Tag: "cat", Type: catID}})
	pen.Property("footer", stringType(), FieldAccess("Footer"))

	m := b.Build()
	require.NoError(t, m.Link())
	assert.True(t, m.Linked())
	assert.ErrorIs(t, m.Link(), ErrAlreadyLinked)

	decl, _ := m.Type(feedID)
	root := m.Root(decl)
	assert.Equal(t, []string{"name", "footer", "dog", "cat"}, root.Children.Keys())

	// Write order follows declaration order even though substitutions are linked last.
	require.Len(t, root.Members, 3)
	assert.Equal(t, poly, root.Members[1].Field)

	f := m.Field(poly)
	require.Len(t, f.Substitutions, 2)

	dog := m.Field(f.Substitutions[0])
	assert.Equal(t, FieldSubstitution, dog.Kind)
	assert.Equal(t, "dog", dog.Name)
	assert.Equal(t, dogID, dog.Type.ID)
	assert.Equal(t, poly, dog.Origin)
	assert.True(t, dog.IsSubstitution())

	d := m.Validate(zooHierarchy())
	assert.True(t, d.IsValid(), d.Error())
}

func TestLink_PolymorphicListSubstitutions(t *testing.T) {
	b := NewBuilder()
	pen := b.Type(feedID, "pen")
	poly := pen.PolymorphicList(ValueType{ID: animalID}, FieldAccess("Animals"),
		[]Matcher{{Tag: "dog", Type: dogID}})

	m := b.Build()
	require.NoError(t, m.Link())

	sub := m.Field(m.Field(poly).Substitutions[0])
	assert.Equal(t, FieldSubstitutionList, sub.Kind)
	assert.True(t, sub.Kind.IsSequence())
}

func TestLink_TagCollision(t *testing.T) {
	b := NewBuilder()
	pen := b.Type(feedID, "pen")
	pen.Property("dog", stringType(), FieldAccess("DogName"))
	pen.Polymorphic(ValueType{ID: animalID}, FieldAccess("Animal"), []Matcher{{Tag: "dog", Type: dogID}})

	m := b.Build()
	require.NoError(t, m.Link())
	assert.True(t, m.Validate(zooHierarchy()).HasCode(diagnostic.CodeDuplicateName))
}

func TestValidate_Matchers(t *testing.T) {
	tests := []struct {
		name     string
		matchers []Matcher
		code     string
	}{
		{name: "empty", matchers: nil, code: diagnostic.CodeEmptyMatchers},
		{
			name:     "duplicate tag",
			matchers: []Matcher{{Tag: "a", Type: dogID}, {Tag: "a", Type: catID}},
			code:     diagnostic.CodeDuplicateMatcher,
		},
		{
			name:     "duplicate type",
			matchers: []Matcher{{Tag: "a", Type: dogID}, {Tag: "b", Type: dogID}},
			code:     diagnostic.CodeDuplicateMatcher,
		},
		{
			name:     "not a subtype",
			matchers: []Matcher{{Tag: "rock", Type: rockID}},
			code:     diagnostic.CodeNotASubtype,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			b.Type(feedID, "pen").Polymorphic(ValueType{ID: animalID}, FieldAccess("Animal"), tt.matchers)

			d := b.Build().Validate(zooHierarchy())
			assert.True(t, d.HasCode(tt.code), d.Error())
		})
	}
}

func TestValidate_AnyAcceptsEveryType(t *testing.T) {
	b := NewBuilder()
	b.Type(feedID, "pen").Polymorphic(ValueType{ID: Any}, FieldAccess("Thing"),
		[]Matcher{{Tag: "rock", Type: rockID}, {Tag: "dog", Type: dogID}})

	d := b.Build().Validate(NewStaticHierarchy())
	assert.True(t, d.IsValid(), d.Error())
}

func TestValidate_TextFieldsNeedScalarOrConverter(t *testing.T) {
	b := NewBuilder()
	item := b.Type(itemID, "item")
	item.Property("published", ValueType{ID: TypeID{PkgPath: "time", Name: "Time"}}, FieldAccess("Published"))
	item.Property("updated", ValueType{ID: TypeID{PkgPath: "time", Name: "Time"}}, FieldAccess("Updated"),
		WithConverter("rfc822"))

	d := b.Build().Validate(nil)
	require.Len(t, d.Errors, 1)
	assert.Contains(t, d.Errors[0].Message, "Published")
}

func TestValidate_UnknownElementTypeIsWarning(t *testing.T) {
	b := NewBuilder()
	b.Type(feedID, "rss").Element("channel", ValueType{ID: itemID, Optional: true}, FieldAccess("Channel"))

	d := b.Build().Validate(nil)
	assert.True(t, d.IsValid())
	require.Len(t, d.Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnknownType, d.Warnings[0].Code)
	assert.NotContains(t, d.Warnings[0].Message, "did you mean")
}

func TestValidate_UnknownTypeSuggestsDeclared(t *testing.T) {
	b := NewBuilder()
	b.Type(itemID, "item")
	b.Type(feedID, "rss").List("item", ValueType{ID: TypeID{PkgPath: "example/rss", Name: "Items"}}, FieldAccess("Items"))

	d := b.Build().Validate(nil)
	require.Len(t, d.Warnings, 1)
	assert.Contains(t, d.Warnings[0].Message, `(did you mean "example/rss.Item"?)`)
}

func TestValidate_Constructor(t *testing.T) {
	b := NewBuilder()
	point := b.Type(itemID, "point").Constructor("NewPoint", 2)
	point.Attribute("x", ValueType{ID: Builtin("int")}, ConstructorAccess(0, "X"))
	point.Attribute("y", ValueType{ID: Builtin("int")}, ConstructorAccess(0, "Y"))
	point.Attribute("z", ValueType{ID: Builtin("int")}, FieldAccess("Z"))

	other := b.Type(feedID, "other")
	other.Attribute("a", ValueType{ID: Builtin("int")}, ConstructorAccess(0, "A"))

	d := b.Build().Validate(nil)
	assert.Len(t, d.ForType(itemID.String()), 2)
	assert.Len(t, d.ForType(feedID.String()), 1)
	assert.True(t, d.HasCode(diagnostic.CodeConstructorMismatch))
}

func TestStaticHierarchy(t *testing.T) {
	base := TypeID{Name: "Base"}
	mid := TypeID{Name: "Mid"}
	leaf := TypeID{Name: "Leaf"}

	h := NewStaticHierarchy()
	h.Declare(mid, base)
	h.Declare(leaf, mid)

	assert.True(t, h.IsSubtype(leaf, base))
	assert.True(t, h.IsSubtype(leaf, mid))
	assert.False(t, h.IsSubtype(base, leaf))
	assert.False(t, h.IsSubtype(leaf, leaf))
	assert.True(t, h.IsSubtype(leaf, Any))
	assert.True(t, Assignable(h, leaf, leaf))

	// Cycles terminate.
	h.Declare(base, leaf)
	assert.True(t, h.IsSubtype(base, mid))
}

func TestValueTypeAndKinds(t *testing.T) {
	assert.True(t, ValueType{ID: Builtin("int64")}.IsScalar())
	assert.Equal(t, KindLong, ValueType{ID: Builtin("int64")}.Scalar())
	assert.Equal(t, KindDouble, ValueType{ID: Builtin("float32")}.Scalar())
	assert.False(t, ValueType{ID: Builtin("int")}.Nullable())
	assert.True(t, ValueType{ID: Builtin("int"), Optional: true}.Nullable())
	assert.True(t, ValueType{ID: itemID}.Nullable())
	assert.Equal(t, "*example/rss.Item", ValueType{ID: itemID, Optional: true}.String())
	assert.Equal(t, KindInvalid, ValueType{ID: TypeID{PkgPath: "p", Name: "string"}}.Scalar())

	k, ok := ParseScalarKind("Double")
	assert.True(t, ok)
	assert.Equal(t, KindDouble, k)

	k, ok = ParseScalarKind("bool")
	assert.True(t, ok)
	assert.Equal(t, KindBool, k)

	_, ok = ParseScalarKind("complex128")
	assert.False(t, ok)

	assert.Equal(t, "Long", KindLong.String())
	assert.Equal(t, "ScalarKind(42)", ScalarKind(42).String())
	assert.Equal(t, "int64", KindLong.GoName())

	assert.Equal(t, itemID, ParseTypeID(itemID.String()))
	assert.Equal(t, Builtin("bool"), ParseTypeID("bool"))
}

func TestAccessExpressions(t *testing.T) {
	f := FieldAccess("Title")
	assert.Equal(t, "v.Title", f.ReadExpr("v"))
	assert.Equal(t, "v.Title = x", f.Assignment("v", "tmp0", "x"))

	m := MethodAccess("Title", "SetTitle")
	assert.Equal(t, "v.Title()", m.ReadExpr("v"))
	assert.Equal(t, "v.SetTitle(x)", m.Assignment("v", "tmp0", "x"))

	c := ConstructorAccess(1, "Y")
	assert.Equal(t, "v.Y()", c.ReadExpr("v"))
	assert.Equal(t, "tmp0 = x", c.Assignment("v", "tmp0", "x"))
	assert.Equal(t, "param[1]", c.String())
	assert.Equal(t, "constructor", c.Kind.String())
}
