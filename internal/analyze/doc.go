// Package analyze provides package loading, type graph extraction and field
// discovery from struct tags.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build an
// in-memory model of structs, interfaces and their fields, then turns tagged
// structs into a model.Model:
//
//	type Item struct {
//		Title    string    `xml:"title"`
//		GUID     *GUID     `xml:"guid"`
//		Lang     string    `xml:"lang,attr"`
//		Body     string    `xml:",chardata"`
//		Summary  string    `xml:"meta>summary,cdata"`
//		Explicit bool      `xml:"explicit" xmlconv:"yesno"`
//		Media    []Media   `xmlpoly:"thumbnail=Thumbnail,content=Content"`
//	}
//
// Supertype questions are answered by go/types: a type is a subtype of every
// interface it or its pointer implements.
package analyze
