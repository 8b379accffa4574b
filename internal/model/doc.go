// Package model provides the Field Model: the declarative, immutable description
// of a type's XML-serializable members.
//
// The model is a flat arena. Types, fields and XML elements live in slices and
// reference each other through FieldID and ElementID, so self-referential and
// mutually recursive types never form ownership cycles.
//
// Key types:
//   - TypeID: package path + type name, the opaque value-type reference
//   - ValueType: a TypeID plus its optional (pointer) spelling
//   - Field: attribute, property, text, element, list and polymorphic descriptors
//   - Element: an XML element being compiled (a type root or a path placeholder)
//   - Model: the arena, built by Builder and linked once by Link
package model
