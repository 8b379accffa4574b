// Package mapping provides the YAML description of XML field models: schema
// definitions, parsing, structural validation, the named converter registry and
// the translation into a linked-ready model.Model.
//
// # Schema Overview
//
// The mapping file has the following structure:
//
//	version: "1"
//	package: xmlbind-generator/examples/rss
//	primitive_converters: [int, bool]
//	types:
//	  - type: Feed
//	    xml_name: rss
//	    fields:
//	      - member: Version
//	        kind: attribute
//	        type: string
//	      - member: Title
//	        kind: property
//	        type: string
//	        path: channel
//	      - member: Items
//	        kind: list
//	        name: item
//	        type: Item
//	        path: channel
//	  - type: Pen
//	    fields:
//	      - member: Animals
//	        kind: polymorphic_list
//	        type: Animal
//	        matchers:
//	          dog: Dog
//	          cat: Cat
//	  - type: Dog
//	    extends: Animal
//	converters:
//	  - name: yesno
//	    type: bool
//	    read: rss.ParseYesNo
//	    write: rss.FormatYesNo
//
// # Type names
//
// Type names are resolved in this order:
//  1. Builtin scalars and "any" ("string", "*int64")
//  2. Qualified names ("example/zoo.Dog")
//  3. Names relative to the file's package ("Dog")
//
// A leading "*" marks an optional value.
//
// # Member access
//
// Fields are accessed directly by default. A field with getter and setter goes
// through methods; a field with param is a constructor parameter read back through
// getter (or a method named after the member).
package mapping
