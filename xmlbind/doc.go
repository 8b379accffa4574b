// Package xmlbind holds the runtime contracts shared by generated and interpreted
// XML adapters: token-stream readers and writers, the runtime configuration, type
// adapters, converters, child binders and the runtime error taxonomy.
//
// An adapter's FromXML is called after its element start and name have been consumed
// and returns before the element's end; the caller consumes the end. ToXML writes the
// whole element, using nameOverride as the element name when it is non-empty.
//
// Struct adapters return pointers (*T) from FromXML and accept either T or *T in ToXML.
package xmlbind
