package xmlbind

import (
	"fmt"
	"strconv"
)

// Converter turns raw attribute values or text content into values and back.
type Converter interface {
	Read(raw string) (any, error)
	Write(value any) (string, error)
}

type typedConverter[T any] struct {
	read  func(string) (T, error)
	write func(T) (string, error)
}

// ConverterOf builds a Converter from typed functions. Write rejects values that are
// neither T nor *T.
func ConverterOf[T any](read func(string) (T, error), write func(T) (string, error)) Converter {
	return typedConverter[T]{read: read, write: write}
}

func (c typedConverter[T]) Read(raw string) (any, error) {
	return c.read(raw)
}

func (c typedConverter[T]) Write(value any) (string, error) {
	switch v := value.(type) {
	case T:
		return c.write(v)
	case *T:
		if v == nil {
			return "", fmt.Errorf("cannot write nil %T", value)
		}

		return c.write(*v)
	default:
		var zero T
		return "", fmt.Errorf("cannot write %T as %T", value, zero)
	}
}

func noError[T any](f func(T) string) func(T) (string, error) {
	return func(v T) (string, error) { return f(v), nil }
}

// Built-in type converters, registered by NewConfig under their Go spellings.
var (
	StringConverter = ConverterOf(func(s string) (string, error) { return s, nil }, noError(FormatString))
	BoolConverter   = ConverterOf(ParseBool, noError(FormatBool))
	IntConverter    = ConverterOf(ParseInt, noError(FormatInt))
	LongConverter   = ConverterOf(ParseLong, noError(FormatLong))
	DoubleConverter = ConverterOf(ParseDouble, noError(FormatDouble))
)

func builtinTypeConverters() map[string]Converter {
	return map[string]Converter{
		"string":  StringConverter,
		"bool":    BoolConverter,
		"int":     IntConverter,
		"int64":   LongConverter,
		"float64": DoubleConverter,
	}
}

// ParseBool accepts "true", "false", "1" and "0" in any case strconv accepts.
func ParseBool(s string) (bool, error) {
	return strconv.ParseBool(s)
}

func ParseInt(s string) (int, error) {
	return strconv.Atoi(s)
}

func ParseLong(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func ParseDouble(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func FormatString(s string) string {
	return s
}

func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}

func FormatInt(i int) string {
	return strconv.Itoa(i)
}

func FormatLong(i int64) string {
	return strconv.FormatInt(i, 10)
}

// FormatDouble uses the shortest representation that parses back to d.
func FormatDouble(d float64) string {
	return strconv.FormatFloat(d, 'g', -1, 64)
}

// ReadWith reads raw through the custom converter registered under name.
func ReadWith[T any](cfg *Config, name, raw string) (T, error) {
	c, err := cfg.Converter(name)
	if err != nil {
		var zero T
		return zero, err
	}

	return readTyped[T](c, raw)
}

// ReadAs reads raw through the type converter registered for typeName.
func ReadAs[T any](cfg *Config, typeName, raw string) (T, error) {
	c, err := cfg.TypeConverter(typeName)
	if err != nil {
		var zero T
		return zero, err
	}

	return readTyped[T](c, raw)
}

func readTyped[T any](c Converter, raw string) (T, error) {
	var zero T

	v, err := c.Read(raw)
	if err != nil {
		return zero, Guard(err)
	}

	t, ok := v.(T)
	if !ok {
		return zero, Guard(fmt.Errorf("converter returned %T, want %T", v, zero))
	}

	return t, nil
}

// WriteWith formats value through the custom converter registered under name.
func WriteWith(cfg *Config, name string, value any) (string, error) {
	c, err := cfg.Converter(name)
	if err != nil {
		return "", err
	}

	s, err := c.Write(value)

	return s, Guard(err)
}

// WriteAs formats value through the type converter registered for typeName.
func WriteAs(cfg *Config, typeName string, value any) (string, error) {
	c, err := cfg.TypeConverter(typeName)
	if err != nil {
		return "", err
	}

	s, err := c.Write(value)

	return s, Guard(err)
}
