package xmlio

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"xmlbind-generator/xmlbind"
)

var _ xmlbind.Writer = (*Writer)(nil)

// Writer writes compact XML: no declaration, no indentation, and empty elements are
// self-closed.
type Writer struct {
	w     io.Writer
	open  []string
	start bool // a start tag is still open for attributes
	err   error
}

// NewWriter creates a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) write(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *Writer) escape(s string) {
	if w.err == nil {
		w.err = xml.EscapeText(w.w, []byte(s))
	}
}

func (w *Writer) closeStart() {
	if w.start {
		w.write(">")
		w.start = false
	}
}

func (w *Writer) BeginElement(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty element name", ErrSyntax)
	}

	w.closeStart()
	w.write("<" + name)
	w.open = append(w.open, name)
	w.start = true

	return w.err
}

func (w *Writer) EndElement() error {
	if len(w.open) == 0 {
		return fmt.Errorf("%w: no element to end", ErrSyntax)
	}

	name := w.open[len(w.open)-1]
	w.open = w.open[:len(w.open)-1]

	if w.start {
		w.write("/>")
		w.start = false
	} else {
		w.write("</" + name + ">")
	}

	return w.err
}

func (w *Writer) Attribute(name, value string) error {
	if !w.start {
		return fmt.Errorf("%w: attribute %q written outside a start tag", ErrSyntax, name)
	}

	w.write(" " + name + `="`)
	w.escape(value)
	w.write(`"`)

	return w.err
}

func (w *Writer) TextContent(value string) error {
	if len(w.open) == 0 {
		return fmt.Errorf("%w: text outside the root element", ErrSyntax)
	}

	w.closeStart()
	w.escape(value)

	return w.err
}

func (w *Writer) TextContentAsCData(value string) error {
	if len(w.open) == 0 {
		return fmt.Errorf("%w: text outside the root element", ErrSyntax)
	}

	w.closeStart()
	w.write("<![CDATA[" + strings.ReplaceAll(value, "]]>", "]]]]><![CDATA[>") + "]]>")

	return w.err
}

// Close reports unclosed elements and the first write error.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}

	if len(w.open) > 0 {
		return fmt.Errorf("%w: unclosed element <%s>", ErrSyntax, w.open[len(w.open)-1])
	}

	return nil
}
