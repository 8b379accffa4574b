package xmlbind

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnmappedAttribute indicates the input has an attribute no field maps.
	ErrUnmappedAttribute = errors.New("unmapped attribute")

	// ErrUnmappedElement indicates the input has an element no field maps.
	ErrUnmappedElement = errors.New("unmapped element")

	// ErrConverterNotFound indicates a referenced converter is not registered.
	ErrConverterNotFound = errors.New("converter not found")

	// ErrConversion indicates a converter failed to read or write a value.
	ErrConversion = errors.New("conversion failed")

	// ErrNoMatchingVariant indicates a polymorphic value matches none of its variants.
	ErrNoMatchingVariant = errors.New("no matching polymorphic variant")

	// ErrTypeAdapterNotFound indicates no adapter is registered for a type.
	ErrTypeAdapterNotFound = errors.New("type adapter not found")
)

// UnmappedError reports input that no field maps, with its document path.
type UnmappedError struct {
	Attribute bool // attribute when set, element otherwise
	Name      string
	Path      string
}

func (e *UnmappedError) Error() string {
	if e.Attribute {
		return fmt.Sprintf("could not map the xml attribute %q at path %s; "+
			"declare a field for it or disable ExceptionOnUnreadXML", e.Name, e.Path)
	}

	return fmt.Sprintf("could not map the xml element <%s> at path %s; "+
		"declare a field for it or disable ExceptionOnUnreadXML", e.Name, e.Path)
}

func (e *UnmappedError) Unwrap() error {
	if e.Attribute {
		return ErrUnmappedAttribute
	}

	return ErrUnmappedElement
}

// ConverterNotFoundError names the converter that could not be resolved.
type ConverterNotFoundError struct {
	Name string
	// Type is set for built-in type converters.
	Type bool
	// Suggestion is the closest registered name, if any.
	Suggestion string
}

func (e *ConverterNotFoundError) Error() string {
	if e.Type {
		return fmt.Sprintf("no type converter registered for %s", e.Name)
	}

	if e.Suggestion != "" {
		return fmt.Sprintf("no converter registered under %q (did you mean %q?)", e.Name, e.Suggestion)
	}

	return fmt.Sprintf("no converter registered under %q", e.Name)
}

func (e *ConverterNotFoundError) Unwrap() error {
	return ErrConverterNotFound
}

// ConversionError wraps any failure of a converter. It matches both ErrConversion and
// the cause.
type ConversionError struct {
	Cause error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%v: %v", ErrConversion, e.Cause)
}

func (e *ConversionError) Unwrap() []error {
	return []error{ErrConversion, e.Cause}
}

// NoMatchingVariantError reports the value no polymorphic variant accepted.
type NoMatchingVariantError struct {
	Value any
}

func (e *NoMatchingVariantError) Error() string {
	return fmt.Sprintf("%v for value of type %T", ErrNoMatchingVariant, e.Value)
}

func (e *NoMatchingVariantError) Unwrap() error {
	return ErrNoMatchingVariant
}

// Guard applies the converter error policy: converter-not-found errors propagate
// unchanged, every other failure becomes a *ConversionError.
func Guard(err error) error {
	if err == nil || errors.Is(err, ErrConverterNotFound) {
		return err
	}

	var ce *ConversionError
	if errors.As(err, &ce) {
		return err
	}

	return &ConversionError{Cause: err}
}
