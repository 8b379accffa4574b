package xmlbind

// AttributeBinder reads one attribute value into value.
type AttributeBinder[T any] interface {
	FromXML(r Reader, cfg *Config, value T) error
}

// ChildElementBinder reads one child element into value. The element start and name
// have been consumed; the caller consumes the end.
type ChildElementBinder[T any] interface {
	FromXML(r Reader, cfg *Config, value T) error
}

// AttributeBinderFunc adapts a function to AttributeBinder.
type AttributeBinderFunc[T any] func(r Reader, cfg *Config, value T) error

func (f AttributeBinderFunc[T]) FromXML(r Reader, cfg *Config, value T) error {
	return f(r, cfg, value)
}

// ChildElementBinderFunc adapts a function to ChildElementBinder.
type ChildElementBinderFunc[T any] func(r Reader, cfg *Config, value T) error

func (f ChildElementBinderFunc[T]) FromXML(r Reader, cfg *Config, value T) error {
	return f(r, cfg, value)
}

// NestedChildElementBinder reads a placeholder element: an element that exists in the
// document only to hold deeper members of the enclosing value. Its maps are filled
// once when the owning adapter is built and only read afterwards.
type NestedChildElementBinder[T any] struct {
	Attributes map[string]AttributeBinder[T]
	Children   map[string]ChildElementBinder[T]
}

// NewNestedChildElementBinder returns an empty binder ready to be filled.
func NewNestedChildElementBinder[T any]() *NestedChildElementBinder[T] {
	return &NestedChildElementBinder[T]{
		Attributes: make(map[string]AttributeBinder[T]),
		Children:   make(map[string]ChildElementBinder[T]),
	}
}

// FromXML dispatches every attribute and child of the placeholder element by name.
// Names without a binder fall to the unmapped input policy; text is skipped.
func (b *NestedChildElementBinder[T]) FromXML(r Reader, cfg *Config, value T) error {
	err := ReadAttributes(r, func(name string) error {
		if ab, ok := b.Attributes[name]; ok {
			return ab.FromXML(r, cfg, value)
		}

		return UnmappedAttribute(r, cfg, name)
	})
	if err != nil {
		return err
	}

	return ReadChildren(r, func(name string) error {
		cb, ok := b.Children[name]
		if !ok {
			return UnmappedElement(r, cfg, name)
		}

		if err := cb.FromXML(r, cfg, value); err != nil {
			return err
		}

		return r.EndElement()
	}, nil)
}
