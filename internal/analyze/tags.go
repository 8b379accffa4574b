package analyze

import (
	"fmt"
	"strings"

	"xmlbind-generator/internal/model"
)

// XMLTag is a parsed `xml:"..."` struct tag.
type XMLTag struct {
	// Name is the tag or attribute name. Empty means derived from the member.
	Name string
	// Path holds the placeholder elements of an "a>b>name" tag.
	Path      []string
	Attr      bool
	CharData  bool
	CData     bool
	OmitEmpty bool
	// Skip is set by the "-" tag.
	Skip bool
	// Getter and Setter name the accessor methods of an unexported field.
	// Only xmlbind tags carry them.
	Getter string
	Setter string
}

// IsText reports whether the tag binds the character data of the element.
func (t XMLTag) IsText() bool {
	return t.CharData || (t.CData && t.Name == "")
}

// ParseXMLTag parses the value of an xml struct tag. Flags encoding/xml
// accepts but the binder does not implement (innerxml, comment, any) are
// rejected.
func ParseXMLTag(tag string) (XMLTag, error) {
	return parseTag(tag, false)
}

// ParseBindTag parses the value of an xmlbind struct tag: the xml grammar
// plus "get=Method" and "set=Method" flags.
func ParseBindTag(tag string) (XMLTag, error) {
	return parseTag(tag, true)
}

func parseTag(tag string, accessors bool) (XMLTag, error) {
	if tag == "-" {
		return XMLTag{Skip: true}, nil
	}

	name, flags, _ := strings.Cut(tag, ",")

	var t XMLTag

	if name != "" {
		parts := strings.Split(name, ">")
		for _, p := range parts {
			if p == "" {
				return XMLTag{}, fmt.Errorf("empty path segment in %q", tag)
			}
		}

		t.Name = parts[len(parts)-1]
		t.Path = parts[:len(parts)-1]
	}

	if flags != "" {
		for _, f := range strings.Split(flags, ",") {
			switch f {
			case "attr":
				t.Attr = true
			case "chardata":
				t.CharData = true
			case "cdata":
				t.CData = true
			case "omitempty":
				t.OmitEmpty = true
			case "":
			default:
				key, method, ok := strings.Cut(f, "=")
				if !accessors || !ok {
					return XMLTag{}, fmt.Errorf("unsupported flag %q", f)
				}

				if method == "" {
					return XMLTag{}, fmt.Errorf("empty method name in %q", tag)
				}

				switch key {
				case "get":
					t.Getter = method
				case "set":
					t.Setter = method
				default:
					return XMLTag{}, fmt.Errorf("unsupported flag %q", f)
				}
			}
		}
	}

	switch {
	case t.Attr && (t.CharData || t.CData):
		return XMLTag{}, fmt.Errorf("attribute can't carry character data in %q", tag)
	case t.Attr && len(t.Path) > 0:
		return XMLTag{}, fmt.Errorf("attribute can't have a path in %q", tag)
	case t.CharData && t.Name != "":
		return XMLTag{}, fmt.Errorf("chardata can't be named in %q", tag)
	}

	return t, nil
}

// ParseMatchers parses an `xmlpoly:"tag=Type,..."` tag. Unqualified type
// names resolve against pkgPath; qualified ones are "path/to/pkg.Name".
func ParseMatchers(tag, pkgPath string) ([]model.Matcher, error) {
	if strings.TrimSpace(tag) == "" {
		return nil, fmt.Errorf("no matchers")
	}

	var matchers []model.Matcher

	for _, pair := range strings.Split(tag, ",") {
		name, typ, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" || typ == "" {
			return nil, fmt.Errorf("malformed matcher %q", pair)
		}

		id := model.TypeID{PkgPath: pkgPath, Name: typ}
		if strings.Contains(typ, ".") {
			id = model.ParseTypeID(typ)
		}

		matchers = append(matchers, model.Matcher{Tag: name, Type: id})
	}

	return matchers, nil
}
