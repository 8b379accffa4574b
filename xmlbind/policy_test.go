package xmlbind_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmlbind-generator/xmlbind"
	"xmlbind-generator/xmlio"
)

func begin(t *testing.T, doc string) *xmlio.Reader {
	t.Helper()

	r := xmlio.NewReader(strings.NewReader(doc))
	require.NoError(t, r.BeginElement())
	_, err := r.NextElementName()
	require.NoError(t, err)

	return r
}

func TestUnmappedAttribute(t *testing.T) {
	doc := `<a xmlns="urn:x" xmlns:m="urn:m" x="1"/>`

	t.Run("raises after skipping", func(t *testing.T) {
		r := begin(t, doc)
		cfg := xmlbind.NewConfig()

		var names []string
		err := xmlbind.ReadAttributes(r, func(name string) error {
			names = append(names, name)
			return xmlbind.UnmappedAttribute(r, cfg, name)
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, xmlbind.ErrUnmappedAttribute))
		assert.Equal(t, []string{"xmlns", "xmlns:m", "x"}, names, "namespace declarations never raise")

		var ue *xmlbind.UnmappedError
		require.True(t, errors.As(err, &ue))
		assert.Equal(t, "x", ue.Name)
		assert.Equal(t, "/a", ue.Path)
		assert.True(t, ue.Attribute)
		assert.False(t, r.HasAttribute())
	})

	t.Run("skips silently when disabled", func(t *testing.T) {
		r := begin(t, doc)
		cfg := xmlbind.NewConfig(xmlbind.WithExceptionOnUnreadXML(false))

		require.NoError(t, xmlbind.IgnoreAttributes(r, cfg))
		require.NoError(t, r.EndElement())
	})
}

func TestUnmappedElement(t *testing.T) {
	doc := `<a><b c="d">2<e/></b><f/></a>`

	for _, raise := range []bool{true, false} {
		r := begin(t, doc)
		cfg := xmlbind.NewConfig(xmlbind.WithExceptionOnUnreadXML(raise))

		var seen []string
		err := xmlbind.ReadChildren(r, func(name string) error {
			seen = append(seen, name)
			if err := xmlbind.UnmappedElement(r, cfg, name); err != nil {
				return err
			}

			return nil
		}, nil)

		if raise {
			require.Error(t, err)
			assert.True(t, errors.Is(err, xmlbind.ErrUnmappedElement))
			assert.Contains(t, err.Error(), "<b>")
			assert.Contains(t, err.Error(), "/a")
			assert.Equal(t, []string{"b"}, seen)

			continue
		}

		require.NoError(t, err)
		assert.Equal(t, []string{"b", "f"}, seen)
		require.NoError(t, r.EndElement())
	}
}

func TestGuard(t *testing.T) {
	assert.NoError(t, xmlbind.Guard(nil))

	notFound := &xmlbind.ConverterNotFoundError{Name: "yesno"}
	assert.Same(t, notFound, xmlbind.Guard(notFound).(*xmlbind.ConverterNotFoundError))

	cause := errors.New("boom")
	err := xmlbind.Guard(cause)

	var ce *xmlbind.ConversionError
	require.True(t, errors.As(err, &ce))
	assert.True(t, errors.Is(err, xmlbind.ErrConversion))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, err, xmlbind.Guard(err), "already guarded errors are not wrapped twice")
}
