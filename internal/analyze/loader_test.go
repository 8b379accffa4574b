package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmlbind-generator/internal/diagnostic"
	"xmlbind-generator/internal/model"
	"xmlbind-generator/internal/plan"
)

const rssPkg = "xmlbind-generator/examples/rss"

func rssID(name string) model.TypeID {
	return model.TypeID{PkgPath: rssPkg, Name: name}
}

func loadRSS(t *testing.T) *TypeGraph {
	t.Helper()

	graph, err := NewAnalyzer().LoadPackages(rssPkg)
	require.NoError(t, err)

	return graph
}

func TestLoadPackages(t *testing.T) {
	graph := loadRSS(t)

	pkg, ok := graph.Packages[rssPkg]
	require.True(t, ok)
	assert.Equal(t, "rss", pkg.Name)
	assert.Contains(t, pkg.Types, rssID("Feed"))
	assert.Contains(t, pkg.Types, rssID("Media"))

	media := graph.GetType(rssID("Media"))
	require.NotNil(t, media)
	assert.Equal(t, TypeKindInterface, media.Kind)

	a := NewAnalyzer()
	graph, err := a.LoadPackages(rssPkg)
	require.NoError(t, err)

	feed, err := a.GetStruct(rssPkg, "Feed")
	require.NoError(t, err)

	names := make([]string, 0, len(feed.Fields))
	for _, f := range feed.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"XMLName", "Version", "Title", "Link", "Description", "Language", "TTL", "Image", "Items"}, names)

	_, err = a.GetStruct(rssPkg, "Media")
	assert.Error(t, err)

	_, err = a.GetStruct(rssPkg, "Missing")
	assert.Error(t, err)

	// Unexported fields are only part of the graph with an xmlbind tag
	enc, err := a.GetStruct(rssPkg, "Enclosure")
	require.NoError(t, err)
	require.Len(t, enc.Fields, 3)
	assert.False(t, enc.Fields[2].Exported)

	tag, err := enc.Fields[2].XMLTag()
	require.NoError(t, err)
	assert.Equal(t, XMLTag{Name: "type", Attr: true, Getter: "Type"}, tag)

	getter, ok := enc.Method("Type")
	require.True(t, ok)
	assert.True(t, getter.IsGetter())
	assert.False(t, getter.PointerRecv)

	ctor, ok := graph.Packages[rssPkg].Funcs["NewEnclosure"]
	require.True(t, ok)
	assert.Equal(t, []string{"url", "length", "mimeType"}, ctor.ParamNames())
	assert.True(t, ctor.Returns(enc.GoType))
}

func TestLoadPackages_Invalid(t *testing.T) {
	_, err := NewAnalyzer().LoadPackages("xmlbind-generator/examples/missing")
	assert.Error(t, err)
}

func TestTypeString(t *testing.T) {
	graph := loadRSS(t)
	item := graph.GetType(rssID("Item"))
	require.NotNil(t, item)

	want := map[string]string{
		"Title":      "string",
		"PubDate":    "*string",
		"GUID":       "*GUID",
		"Categories": "[]string",
		"Media":      "[]Media",
	}

	for _, f := range item.Fields {
		if s, ok := want[f.Name]; ok {
			assert.Equal(t, s, TypeString(f.Type), f.Name)
		}
	}

	assert.Equal(t, "Item.Media[]", NewTypePath("Item").Field("Media").Slice().String())
}

func TestDiscover_RSS(t *testing.T) {
	d := Discover(loadRSS(t))
	require.False(t, d.Diagnostics.HasErrors(), d.Diagnostics.Error())

	m := d.Model

	// Structs only, in package scope order
	assert.Equal(t, []model.TypeID{
		rssID("Content"), rssID("Enclosure"), rssID("Feed"), rssID("GUID"),
		rssID("Image"), rssID("Item"), rssID("Thumbnail"),
	}, m.TypeIDs())

	feed, ok := m.Type(rssID("Feed"))
	require.True(t, ok)
	assert.Equal(t, "rss", feed.XMLName)

	root := m.Root(feed)
	_, ok = root.Attributes.Get("version")
	assert.True(t, ok)

	channel, ok := root.Children.Get("channel")
	require.True(t, ok)
	require.True(t, channel.IsPlaceholder())
	assert.Equal(t, []string{"title", "link", "description", "language", "ttl", "image", "item"},
		m.Element(channel.Placeholder).Children.Keys())

	ttl, ok := m.Element(channel.Placeholder).Children.Get("ttl")
	require.True(t, ok)
	assert.True(t, m.Field(ttl.Field).OmitEmpty)

	item, ok := m.Type(rssID("Item"))
	require.True(t, ok)

	explicit, ok := m.Root(item).Children.Get("explicit")
	require.True(t, ok)
	assert.Equal(t, "yesno", m.Field(explicit.Field).Converter)

	desc, ok := m.Root(item).Children.Get("description")
	require.True(t, ok)
	assert.True(t, m.Field(desc.Field).CData)
	assert.Equal(t, model.FieldProperty, m.Field(desc.Field).Kind)

	categories, ok := m.Root(item).Children.Get("category")
	require.True(t, ok)
	assert.Equal(t, model.FieldList, m.Field(categories.Field).Kind)

	guid, ok := m.Type(rssID("GUID"))
	require.True(t, ok)
	require.NotEqual(t, model.NoField, m.Root(guid).Text)
	assert.Equal(t, model.FieldText, m.Field(m.Root(guid).Text).Kind)

	var media *model.Field
	for _, mem := range m.Root(item).Members {
		if !mem.IsPlaceholder() && m.Field(mem.Field).Kind == model.FieldPolymorphicList {
			media = m.Field(mem.Field)
		}
	}
	require.NotNil(t, media)
	assert.Equal(t, "Media", media.Member)
	assert.Equal(t, model.ValueType{ID: rssID("Media")}, media.Type)
	assert.Equal(t, []model.Matcher{
		{Tag: "thumbnail", Type: rssID("Thumbnail")},
		{Tag: "content", Type: rssID("Content")},
	}, media.Matchers)
}

func TestHierarchy(t *testing.T) {
	h := NewHierarchy(loadRSS(t))

	assert.True(t, h.IsSubtype(rssID("Thumbnail"), rssID("Media")))
	// Content implements Media through its pointer
	assert.True(t, h.IsSubtype(rssID("Content"), rssID("Media")))
	assert.False(t, h.IsSubtype(rssID("Item"), rssID("Media")))
	assert.False(t, h.IsSubtype(rssID("Media"), rssID("Media")))
	assert.False(t, h.IsSubtype(rssID("Media"), rssID("Thumbnail")))
	assert.True(t, h.IsSubtype(rssID("Item"), model.Any))
	assert.False(t, h.IsSubtype(rssID("Missing"), rssID("Media")))
}

func TestDiscover_Compiles(t *testing.T) {
	d := Discover(loadRSS(t), rssPkg)
	require.False(t, d.Diagnostics.HasErrors())

	res, err := plan.CompileAll(context.Background(), d.Model, d.Hierarchy, plan.Options{})
	require.NoError(t, err)
	require.NoError(t, res.Err())
	assert.Len(t, res.Plans, 7)
}

func TestDiscover_Constructor(t *testing.T) {
	d := Discover(loadRSS(t))
	require.False(t, d.Diagnostics.HasErrors(), d.Diagnostics.Error())

	enc, ok := d.Model.Type(rssID("Enclosure"))
	require.True(t, ok)
	assert.Equal(t, "NewEnclosure", enc.Constructor)
	assert.Equal(t, 3, enc.Params)

	want := map[string]model.Access{
		"url":    model.ConstructorAccess(0, "URL"),
		"length": model.ConstructorAccess(1, "Length"),
		"type":   model.ConstructorAccess(2, "Type"),
	}

	root := d.Model.Root(enc)
	for name, access := range want {
		id, ok := root.Attributes.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, access, d.Model.Field(id).Access, name)
	}
}

func TestDiscover_Accessors(t *testing.T) {
	graph, err := NewAnalyzer().LoadPackages("./testdata/accessors")
	require.NoError(t, err)

	const pkg = "xmlbind-generator/internal/analyze/testdata/accessors"

	d := Discover(graph)

	counter, ok := d.Model.Type(model.TypeID{PkgPath: pkg, Name: "Counter"})
	require.True(t, ok)
	assert.Empty(t, counter.Constructor)

	name, ok := d.Model.Root(counter).Attributes.Get("name")
	require.True(t, ok)
	assert.Equal(t, model.MethodAccess("Name", "SetName"), d.Model.Field(name).Access)

	count, ok := d.Model.Root(counter).Children.Get("count")
	require.True(t, ok)
	assert.Equal(t, model.MethodAccess("Count", "SetCount"), d.Model.Field(count.Field).Access)

	// Untagged unexported members are ignored
	assert.Equal(t, 1, d.Model.Root(counter).Attributes.Len())
	assert.Len(t, d.Model.Root(counter).Members, 1)

	var messages []string
	for _, e := range d.Diagnostics.Errors {
		assert.Equal(t, diagnostic.CodeInvalidField, e.Code)
		messages = append(messages, e.Message)
	}

	assert.ElementsMatch(t, []string{
		"Sealed has no setter method matching set_id",
		"constructor NewPoint has no parameter for y",
	}, messages)
}

func TestDiscover_UnknownPackage(t *testing.T) {
	d := Discover(loadRSS(t), "example/missing")
	assert.True(t, d.Diagnostics.HasCode(diagnostic.CodeUnknownType))
	assert.Empty(t, d.Model.TypeIDs())
}
