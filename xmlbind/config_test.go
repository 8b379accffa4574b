package xmlbind_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmlbind-generator/xmlbind"
)

var yesNo = xmlbind.ConverterOf(
	func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "yes", "true", "1":
			return true, nil
		case "no", "false", "0":
			return false, nil
		default:
			return false, errors.New("not a yes/no value: " + s)
		}
	},
	func(b bool) (string, error) {
		if b {
			return "yes", nil
		}

		return "no", nil
	},
)

func TestConfig_Defaults(t *testing.T) {
	cfg := xmlbind.NewConfig()
	assert.True(t, cfg.ExceptionOnUnreadXML)

	for _, name := range []string{"string", "bool", "int", "int64", "float64"} {
		_, err := cfg.TypeConverter(name)
		assert.NoError(t, err, name)
	}

	_, err := cfg.TypeConverter("time.Time")
	assert.True(t, errors.Is(err, xmlbind.ErrConverterNotFound))

	_, err = cfg.Converter("yesno")
	assert.True(t, errors.Is(err, xmlbind.ErrConverterNotFound))
	assert.Contains(t, err.Error(), "yesno")

	_, err = cfg.TypeAdapter("example.Feed")
	assert.True(t, errors.Is(err, xmlbind.ErrTypeAdapterNotFound))
}

func TestConfig_NotFoundSuggestions(t *testing.T) {
	cfg := xmlbind.NewConfig(xmlbind.WithConverter("yesno", yesNo))
	cfg.RegisterTypeAdapter("example/rss.Feed", nil)

	_, err := cfg.Converter("yesn")
	var notFound *xmlbind.ConverterNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "yesno", notFound.Suggestion)
	assert.EqualError(t, err, `no converter registered under "yesn" (did you mean "yesno"?)`)

	_, err = cfg.TypeAdapter("example/rss.Fed")
	assert.ErrorIs(t, err, xmlbind.ErrTypeAdapterNotFound)
	assert.EqualError(t, err, `type adapter not found: example/rss.Fed (did you mean "example/rss.Feed"?)`)

	_, err = cfg.Converter("base64")
	assert.EqualError(t, err, `no converter registered under "base64"`)
}

func TestConfig_Registration(t *testing.T) {
	cfg := xmlbind.NewConfig(xmlbind.WithConverter("yesno", yesNo))

	b, err := xmlbind.ReadWith[bool](cfg, "yesno", "YES")
	require.NoError(t, err)
	assert.True(t, b)

	s, err := xmlbind.WriteWith(cfg, "yesno", false)
	require.NoError(t, err)
	assert.Equal(t, "no", s)

	_, err = xmlbind.ReadWith[bool](cfg, "yesno", "maybe")
	require.Error(t, err)
	assert.True(t, errors.Is(err, xmlbind.ErrConversion))

	_, err = xmlbind.ReadWith[int](cfg, "yesno", "yes")
	assert.True(t, errors.Is(err, xmlbind.ErrConversion), "result type mismatch is a conversion failure")

	_, err = xmlbind.WriteWith(cfg, "yesno", "text")
	assert.True(t, errors.Is(err, xmlbind.ErrConversion))

	_, err = xmlbind.ReadWith[bool](cfg, "missing", "yes")
	assert.True(t, errors.Is(err, xmlbind.ErrConverterNotFound))
	assert.False(t, errors.Is(err, xmlbind.ErrConversion))

	hex := xmlbind.ConverterOf(
		func(s string) (int, error) {
			v, err := strconv.ParseInt(s, 16, 64)
			return int(v), err
		},
		func(i int) (string, error) { return strconv.FormatInt(int64(i), 16), nil },
	)
	cfg.RegisterTypeConverter("int", hex)

	v, err := xmlbind.ReadAs[int](cfg, "int", "ff")
	require.NoError(t, err)
	assert.Equal(t, 255, v)

	n := 26
	s, err = xmlbind.WriteAs(cfg, "int", &n)
	require.NoError(t, err)
	assert.Equal(t, "1a", s)
}

func TestBuiltinConverters(t *testing.T) {
	cfg := xmlbind.NewConfig()

	d, err := xmlbind.ReadAs[float64](cfg, "float64", "2.5")
	require.NoError(t, err)
	assert.InDelta(t, 2.5, d, 0)

	s, err := xmlbind.WriteAs(cfg, "float64", 0.1)
	require.NoError(t, err)
	assert.Equal(t, "0.1", s)

	s, err = xmlbind.WriteAs(cfg, "int64", int64(-7))
	require.NoError(t, err)
	assert.Equal(t, "-7", s)

	_, err = xmlbind.ReadAs[int](cfg, "int", "x")
	assert.True(t, errors.Is(err, xmlbind.ErrConversion))
}
