package primitive

import (
	"fmt"
	"reflect"
	"slices"

	"xmlbind-generator/internal/match"
	"xmlbind-generator/xmlbind"
)

// Definition describes one standard converter.
type Definition struct {
	// Name is the name fields refer to.
	Name     string
	Category CategoryEnum
	// Type is the Go value type the converter reads and writes.
	Type      reflect.Type
	Converter xmlbind.Converter
}

var definitions = []Definition{
	define("yesno", CategoryTextualBool, ParseTextualBool, FormatYesNo),
	define("onoff", CategoryTextualBool, ParseTextualBool, FormatOnOff),
	define("bit", CategoryNumericBool, ParseNumericBool, FormatNumericBool),
	define("datetime", CategoryDatetime, ParseDatetime, FormatDatetime),
	define("date", CategoryDatetime, ParseDate, FormatDate),
	define("rfc822", CategoryDatetime, ParseRFC822, FormatRFC822),
	define("timestamp", CategoryTimestamp, ParseTimestamp, FormatTimestamp),
	define("duration", CategoryDuration, ParseDuration, FormatDuration),
	define("nanoseconds", CategoryNanoseconds, ParseNanoseconds, FormatNanoseconds),
	define("seconds", CategorySeconds, ParseSeconds, FormatSeconds),
}

func define[T any](name string, c CategoryEnum, read func(string) (T, error), write func(T) (string, error)) Definition {
	return Definition{
		Name:      name,
		Category:  c,
		Type:      reflect.TypeFor[T](),
		Converter: xmlbind.ConverterOf(read, write),
	}
}

// Lookup returns the standard converter called name.
func Lookup(name string) (Definition, bool) {
	for _, d := range definitions {
		if d.Name == name {
			return d, true
		}
	}

	return Definition{}, false
}

// Has reports whether name is a standard converter.
func Has(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Must returns the converter called name and panics if there is none. Generated
// code uses it with names checked at generation time.
func Must(name string) xmlbind.Converter {
	d, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("primitive: no standard converter %q%s", name, match.DidYouMean(name, Names(CategoryAll))))
	}

	return d.Converter
}

// Standard returns the distinct standard converter names among names, sorted.
func Standard(names ...string) []string {
	var out []string

	for _, name := range names {
		if Has(name) && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}

	slices.Sort(out)

	return out
}

// Names returns the converters of the selected categories, sorted.
func Names(c CategoryEnum) []string {
	var names []string

	for _, d := range definitions {
		if c&d.Category != 0 {
			names = append(names, d.Name)
		}
	}

	slices.Sort(names)

	return names
}

// Definitions returns the converters of the selected categories in definition order.
func Definitions(c CategoryEnum) []Definition {
	var out []Definition

	for _, d := range definitions {
		if c&d.Category != 0 {
			out = append(out, d)
		}
	}

	return out
}

// Register adds the converters of the selected categories to cfg.
func Register(cfg *xmlbind.Config, c CategoryEnum) {
	for _, d := range Definitions(c) {
		cfg.RegisterConverter(d.Name, d.Converter)
	}
}

// Option registers the converters of the selected categories while a Config is built.
func Option(c CategoryEnum) xmlbind.Option {
	return func(cfg *xmlbind.Config) {
		for _, d := range Definitions(c) {
			xmlbind.WithConverter(d.Name, d.Converter)(cfg)
		}
	}
}
