package model

import "iter"

// Keyed is an insertion-ordered map with unique string keys.
type Keyed[V any] struct {
	keys   []string
	values []V
	index  map[string]int
}

// Put adds v under key. It returns false and leaves the map untouched if key exists.
func (k *Keyed[V]) Put(key string, v V) bool {
	if k.index == nil {
		k.index = make(map[string]int)
	}

	if _, ok := k.index[key]; ok {
		return false
	}

	k.index[key] = len(k.keys)
	k.keys = append(k.keys, key)
	k.values = append(k.values, v)

	return true
}

// Get returns the value stored under key.
func (k *Keyed[V]) Get(key string) (V, bool) {
	i, ok := k.index[key]
	if !ok {
		var zero V
		return zero, false
	}

	return k.values[i], true
}

// Len returns the number of entries.
func (k *Keyed[V]) Len() int {
	return len(k.keys)
}

// Keys returns the keys in insertion order.
func (k *Keyed[V]) Keys() []string {
	return append([]string(nil), k.keys...)
}

// Values returns the values in insertion order.
func (k *Keyed[V]) Values() []V {
	return append([]V(nil), k.values...)
}

// All iterates entries in insertion order.
func (k *Keyed[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for i, key := range k.keys {
			if !yield(key, k.values[i]) {
				return
			}
		}
	}
}

// Child is an entry of Element.Children: either a field or a placeholder element
// standing for one segment of a nested path.
type Child struct {
	Field       FieldID
	Placeholder ElementID
}

// IsPlaceholder reports whether the child is a nested placeholder element.
func (c Child) IsPlaceholder() bool {
	return c.Placeholder != NoElement
}

// Member is an entry of Element.Members, the declaration order used for writing.
type Member = Child

// Element is an XML element being compiled: the root of a declared type or a
// placeholder for a nested path segment.
type Element struct {
	ID    ElementID
	Name  string
	Owner TypeID
	// Parent is NoElement for a type root.
	Parent ElementID

	Attributes Keyed[FieldID]
	// Children indexes child elements by XML name for read dispatch.
	Children Keyed[Child]
	// Members lists fields and placeholders in declaration order for writing.
	Members []Member
	// Text is the field bound to the element's own text content, or NoField.
	Text FieldID
}

// IsPlaceholder reports whether the element is a nested path segment.
func (e *Element) IsPlaceholder() bool {
	return e.Parent != NoElement
}

// HasAttributes reports whether any attribute is declared.
func (e *Element) HasAttributes() bool {
	return e.Attributes.Len() > 0
}

// HasChildElements reports whether any child element is declared.
func (e *Element) HasChildElements() bool {
	return e.Children.Len() > 0
}
