package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	mf, err := Parse([]byte(`
types:
  - type: example/zoo.Dog
  - type: Pen
    xml_name: enclosure
`))
	require.NoError(t, err)

	assert.Equal(t, "1", mf.Version)
	require.Len(t, mf.Types, 2)
	assert.Equal(t, "dog", mf.Types[0].XMLName)
	assert.Equal(t, "enclosure", mf.Types[1].XMLName)
}

func TestParse_StringOrArray(t *testing.T) {
	mf, err := Parse([]byte(`
primitive_converters: int
types:
  - type: A
    extends: [B, C]
    fields:
      - member: X
        kind: attribute
        type: int
        path: meta/info
      - member: Y
        kind: attribute
        type: int
        path: [meta, extra]
`))
	require.NoError(t, err)

	assert.Equal(t, StringOrArray{"int"}, mf.PrimitiveConverters)
	assert.Equal(t, StringOrArray{"B", "C"}, mf.Types[0].Extends)
	assert.Equal(t, []string{"meta", "info"}, mf.Types[0].Fields[0].PathSegments())
	assert.Equal(t, []string{"meta", "extra"}, mf.Types[0].Fields[1].PathSegments())
}

func TestParse_StringOrArrayLists(t *testing.T) {
	mf, err := Parse([]byte(`
primitive_converters: "int, long,, int"
types:
  - type: A
    extends: [B, " C ", B]
  - type: D
    extends: ""
`))
	require.NoError(t, err)

	assert.Equal(t, StringOrArray{"int", "long"}, mf.PrimitiveConverters)
	assert.Equal(t, StringOrArray{"B", "C"}, mf.Types[0].Extends)
	assert.True(t, mf.Types[1].Extends.IsEmpty())

	_, err = Parse([]byte("types:\n  - type: A\n    extends: {B: C}\n"))
	assert.Error(t, err)
}

func TestParse_Matchers(t *testing.T) {
	t.Run("mapping keeps declaration order", func(t *testing.T) {
		mf, err := Parse([]byte(`
types:
  - type: Pen
    fields:
      - member: Animals
        kind: polymorphic_list
        type: Animal
        matchers:
          zebra: Zebra
          cat: Cat
          dog: Dog
`))
		require.NoError(t, err)
		assert.Equal(t, []string{"zebra", "cat", "dog"}, mf.Types[0].Fields[0].Matchers.Tags())
	})

	t.Run("sequence", func(t *testing.T) {
		mf, err := Parse([]byte(`
types:
  - type: Pen
    fields:
      - member: Animal
        kind: polymorphic
        type: any
        matchers:
          - tag: dog
            type: Dog
`))
		require.NoError(t, err)
		assert.Equal(t, MatcherList{{Tag: "dog", Type: "Dog"}}, mf.Types[0].Fields[0].Matchers)
	})

	t.Run("nested values are rejected", func(t *testing.T) {
		_, err := Parse([]byte(`
types:
  - type: Pen
    fields:
      - member: Animal
        kind: polymorphic
        type: any
        matchers:
          dog: [Dog]
`))
		assert.Error(t, err)
	})
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("types: [\n"))
	assert.Error(t, err)
}

func TestParse_Strict(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "unknown key",
			doc:  "types:\n  - type: Pen\n    xmlname: pen\n",
			want: "field xmlname not found",
		},
		{name: "unsupported version", doc: "version: \"2\"\ntypes: []\n", want: `unsupported mapping version "2"`},
		{name: "empty", doc: "", want: "empty mapping document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile_NamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("types: [\n"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestMarshal_RoundTrip(t *testing.T) {
	mf, err := LoadFile(filepath.Join("testdata", "rss.yaml"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteFile(mf, path))

	again, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mf, again)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFieldMapping_Defaults(t *testing.T) {
	param := 1

	tests := []struct {
		name   string
		fm     FieldMapping
		xml    string
		access string
	}{
		{name: "field", fm: FieldMapping{Member: "Title", Kind: KindProperty}, xml: "title", access: "Title"},
		{name: "explicit name", fm: FieldMapping{Member: "URL", Kind: KindAttribute, Name: "url"}, xml: "url", access: "URL"},
		{name: "text", fm: FieldMapping{Member: "Value", Kind: KindText}, xml: "", access: "Value"},
		{name: "polymorphic", fm: FieldMapping{Member: "Media", Kind: KindPolymorphicList}, xml: "", access: "Media"},
		{
			name:   "methods",
			fm:     FieldMapping{Member: "Rank", Kind: KindAttribute, Getter: "Rank", Setter: "SetRank"},
			xml:    "rank",
			access: "Rank/SetRank",
		},
		{name: "param", fm: FieldMapping{Member: "Length", Kind: KindAttribute, Param: &param}, xml: "length", access: "param[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.xml, tt.fm.XMLName())
			assert.Equal(t, tt.access, tt.fm.Access().String())
		})
	}
}
