package xmlbind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmlbind-generator/xmlbind"
)

func TestReadChildren_Text(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		text     string
		replayed bool
		children []string
	}{
		{name: "split by a child", doc: `<a>x<b>1</b>y</a>`, text: "xy", replayed: true, children: []string{"b"}},
		{name: "around children", doc: "<a>\n  x<b/>\n  <c/>y\n</a>", text: "\n  xy\n", replayed: true, children: []string{"b", "c"}},
		{name: "whitespace only", doc: `<a>  </a>`, text: "  ", replayed: true},
		{name: "indented children", doc: "<a>\n  <b/>\n</a>", children: []string{"b"}},
		{name: "empty", doc: `<a/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := begin(t, tt.doc)

			var (
				children []string
				text     string
				replayed bool
			)

			err := xmlbind.ReadChildren(r,
				func(name string) error {
					children = append(children, name)
					return r.SkipRemainingElement()
				},
				func(tr xmlbind.Reader) error {
					replayed = true
					assert.True(t, tr.HasTextContent())

					var err error
					text, err = tr.NextTextContent()

					assert.False(t, tr.HasTextContent(), "text is replayed once")

					return err
				})
			require.NoError(t, err)
			require.NoError(t, r.EndElement())

			assert.Equal(t, tt.replayed, replayed)
			assert.Equal(t, tt.text, text)
			assert.Equal(t, tt.children, children)
		})
	}
}

func TestReadChildren_TypedText(t *testing.T) {
	r := begin(t, `<a> 4<b/>2 </a>`)

	var n int
	err := xmlbind.ReadChildren(r,
		func(string) error { return r.SkipRemainingElement() },
		func(tr xmlbind.Reader) error {
			var err error
			n, err = tr.NextTextContentAsInt()

			return err
		})
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestReadChildren_BadTypedText(t *testing.T) {
	r := begin(t, `<a>4<b/>x</a>`)

	err := xmlbind.ReadChildren(r,
		func(string) error { return r.SkipRemainingElement() },
		func(tr xmlbind.Reader) error {
			_, err := tr.NextTextContentAsInt()
			return err
		})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"4x"`)
	assert.Contains(t, err.Error(), "/a")
}

func TestReadChildren_NilText(t *testing.T) {
	r := begin(t, `<a>x<b/>y</a>`)

	var children int
	err := xmlbind.ReadChildren(r, func(string) error {
		children++
		return r.SkipRemainingElement()
	}, nil)
	require.NoError(t, err)
	require.NoError(t, r.EndElement())
	assert.Equal(t, 1, children)
}
