package xmlbind

import "fmt"

// TypeAdapter reads and writes values of one type.
type TypeAdapter interface {
	FromXML(r Reader, cfg *Config) (any, error)
	ToXML(w Writer, cfg *Config, value any, nameOverride string) error
}

// AdapterFuncs adapts a pair of functions to TypeAdapter.
type AdapterFuncs struct {
	Read  func(r Reader, cfg *Config) (any, error)
	Write func(w Writer, cfg *Config, value any, nameOverride string) error
}

func (a AdapterFuncs) FromXML(r Reader, cfg *Config) (any, error) {
	return a.Read(r, cfg)
}

func (a AdapterFuncs) ToXML(w Writer, cfg *Config, value any, nameOverride string) error {
	return a.Write(w, cfg, value, nameOverride)
}

// ElementName picks the element name an adapter writes.
func ElementName(name, nameOverride string) string {
	if nameOverride != "" {
		return nameOverride
	}

	return name
}

// ReadChild reads the current child element through the adapter of typeName. The
// element start and name must have been consumed.
func ReadChild(r Reader, cfg *Config, typeName string) (any, error) {
	a, err := cfg.TypeAdapter(typeName)
	if err != nil {
		return nil, err
	}

	return a.FromXML(r, cfg)
}

// WriteChild writes value through the adapter of typeName.
func WriteChild(w Writer, cfg *Config, typeName string, value any, nameOverride string) error {
	a, err := cfg.TypeAdapter(typeName)
	if err != nil {
		return err
	}

	return a.ToXML(w, cfg, value, nameOverride)
}

// ReadChildAs reads the current child element through the adapter of typeName and
// asserts the result to T.
func ReadChildAs[T any](r Reader, cfg *Config, typeName string) (T, error) {
	var zero T

	v, err := ReadChild(r, cfg, typeName)
	if err != nil {
		return zero, err
	}

	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("adapter of %s returned %T, want %T", typeName, v, zero)
	}

	return t, nil
}

// As narrows v to a *T. A T is boxed; a non-nil *T is returned as is.
func As[T any](v any) (*T, bool) {
	switch t := v.(type) {
	case *T:
		return t, t != nil
	case T:
		return &t, true
	default:
		return nil, false
	}
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}
