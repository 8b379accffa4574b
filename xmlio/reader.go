// Package xmlio implements the xmlbind token-stream reader and writer on top of
// encoding/xml.
package xmlio

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"xmlbind-generator/xmlbind"
)

// ErrSyntax indicates the document does not have the structure the caller expects.
var ErrSyntax = errors.New("xml syntax")

var _ xmlbind.Reader = (*Reader)(nil)

// Reader is a pull reader over an XML document. Prefixed names keep their prefix
// ("media:thumbnail"). Whitespace-only text before a start or end tag is held
// back: it is dropped at the tag and only returned by NextTextContent.
// Comments, processing instructions and directives are ignored. Every end tag
// must close the innermost open element.
type Reader struct {
	dec *xml.Decoder

	next xml.Token
	eof  bool
	err  error

	// open holds the names of the elements started in the document,
	// including those skipped.
	open []string
	// space is whitespace-only text read ahead of the next token.
	space []byte

	path  []string
	name  string
	attrs []xml.Attr
	value *string
}

// NewReader creates a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	return &Reader{dec: dec}
}

func (r *Reader) fail(err error) error {
	if r.err == nil {
		r.err = err
	}

	return r.err
}

func (r *Reader) syntax(format string, args ...any) error {
	return r.fail(fmt.Errorf("%w: %s at path %s", ErrSyntax, fmt.Sprintf(format, args...), r.Path()))
}

// peek returns the next significant token without consuming it; nil at the end of
// input or after an error.
func (r *Reader) peek() xml.Token {
	for r.next == nil && !r.eof && r.err == nil {
		tok, err := r.dec.RawToken()
		if errors.Is(err, io.EOF) {
			if len(r.open) > 0 {
				r.syntax("unexpected end of document, <%s> is not closed", r.open[len(r.open)-1])
				return nil
			}

			r.eof = true

			return nil
		}

		if err != nil {
			r.fail(err)
			return nil
		}

		switch t := tok.(type) {
		case xml.StartElement:
			r.open = append(r.open, qualified(t.Name))
			r.next = t.Copy()
		case xml.EndElement:
			name := qualified(t.Name)

			switch {
			case len(r.open) == 0:
				r.syntax("unexpected </%s>", name)
				return nil
			case r.open[len(r.open)-1] != name:
				r.syntax("element <%s> closed by </%s>", r.open[len(r.open)-1], name)
				return nil
			}

			r.open = r.open[:len(r.open)-1]
			r.next = t
		case xml.CharData:
			r.next = t.Copy()
		}
	}

	return r.next
}

// skipSpace moves whitespace-only text ahead into the pending run, so that the
// next token is markup or significant text.
func (r *Reader) skipSpace() {
	for {
		text, ok := r.peek().(xml.CharData)
		if !ok || len(bytes.TrimSpace(text)) > 0 {
			return
		}

		r.space = append(r.space, text...)
		r.next = nil
	}
}

// consume takes the next token. Pending whitespace ends at a tag.
func (r *Reader) consume() xml.Token {
	tok := r.peek()
	r.next = nil

	switch tok.(type) {
	case xml.StartElement, xml.EndElement:
		r.space = r.space[:0]
	}

	return tok
}

// content drops what is left of the current start tag before moving to the content.
func (r *Reader) content() {
	r.attrs = nil
	r.value = nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}

	return n.Space + ":" + n.Local
}

func (r *Reader) BeginElement() error {
	r.content()
	r.skipSpace()

	start, ok := r.peek().(xml.StartElement)
	if !ok {
		if r.err != nil {
			return r.err
		}

		return r.syntax("expected an element start, found %s", describe(r.peek()))
	}

	r.consume()
	r.name = qualified(start.Name)
	r.attrs = start.Attr
	r.path = append(r.path, r.name)

	return nil
}

func (r *Reader) EndElement() error {
	r.content()
	r.skipSpace()

	if _, ok := r.peek().(xml.EndElement); !ok || len(r.path) == 0 {
		if r.err != nil {
			return r.err
		}

		return r.syntax("expected the end of the current element, found %s", describe(r.peek()))
	}

	r.consume()
	r.path = r.path[:len(r.path)-1]

	return nil
}

func (r *Reader) HasElement() bool {
	r.content()
	r.skipSpace()

	_, ok := r.peek().(xml.StartElement)

	return ok
}

func (r *Reader) HasAttribute() bool {
	return len(r.attrs) > 0 && r.err == nil
}

// HasTextContent reports significant text ahead: text which isn't only
// whitespace, or whitespace running up to the end of the current element.
func (r *Reader) HasTextContent() bool {
	r.content()
	r.skipSpace()

	switch r.peek().(type) {
	case xml.CharData:
		return true
	case xml.EndElement:
		return len(r.space) > 0
	default:
		return false
	}
}

func (r *Reader) NextElementName() (string, error) {
	if r.err != nil {
		return "", r.err
	}

	if len(r.path) == 0 {
		return "", r.syntax("no element has been begun")
	}

	return r.name, nil
}

func (r *Reader) NextAttributeName() (string, error) {
	if r.err != nil {
		return "", r.err
	}

	if r.value != nil {
		return "", r.syntax("value of the previous attribute was not consumed")
	}

	if len(r.attrs) == 0 {
		return "", r.syntax("no attribute left")
	}

	attr := r.attrs[0]
	r.attrs = r.attrs[1:]
	r.value = &attr.Value

	return qualified(attr.Name), nil
}

func (r *Reader) NextAttributeValue() (string, error) {
	if r.err != nil {
		return "", r.err
	}

	if r.value == nil {
		return "", r.syntax("no attribute name has been read")
	}

	v := *r.value
	r.value = nil

	return v, nil
}

func (r *Reader) SkipAttributeValue() error {
	_, err := r.NextAttributeValue()
	return err
}

func (r *Reader) NextAttributeValueAsBool() (bool, error) {
	return parseAttribute(r, xmlbind.ParseBool)
}

func (r *Reader) NextAttributeValueAsInt() (int, error) {
	return parseAttribute(r, xmlbind.ParseInt)
}

func (r *Reader) NextAttributeValueAsLong() (int64, error) {
	return parseAttribute(r, xmlbind.ParseLong)
}

func (r *Reader) NextAttributeValueAsDouble() (float64, error) {
	return parseAttribute(r, xmlbind.ParseDouble)
}

func (r *Reader) NextTextContent() (string, error) {
	r.content()

	var sb strings.Builder

	sb.Write(r.space)
	r.space = r.space[:0]

	for {
		text, ok := r.peek().(xml.CharData)
		if !ok {
			break
		}

		r.consume()
		sb.Write(text)
	}

	return sb.String(), r.err
}

func (r *Reader) SkipTextContent() error {
	_, err := r.NextTextContent()
	return err
}

func (r *Reader) NextTextContentAsBool() (bool, error) {
	return parseText(r, xmlbind.ParseBool)
}

func (r *Reader) NextTextContentAsInt() (int, error) {
	return parseText(r, xmlbind.ParseInt)
}

func (r *Reader) NextTextContentAsLong() (int64, error) {
	return parseText(r, xmlbind.ParseLong)
}

func (r *Reader) NextTextContentAsDouble() (float64, error) {
	return parseText(r, xmlbind.ParseDouble)
}

func (r *Reader) SkipRemainingElement() error {
	r.content()

	if len(r.path) == 0 {
		return r.syntax("no element to skip")
	}

	for depth := 0; ; {
		switch r.consume().(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				r.path = r.path[:len(r.path)-1]
				return nil
			}

			depth--
		case nil:
			if r.err != nil {
				return r.err
			}

			return r.syntax("unexpected end of document")
		}
	}
}

func (r *Reader) Path() string {
	return "/" + strings.Join(r.path, "/")
}

func (r *Reader) Err() error {
	return r.err
}

func parseAttribute[T any](r *Reader, parse func(string) (T, error)) (T, error) {
	var zero T

	raw, err := r.NextAttributeValue()
	if err != nil {
		return zero, err
	}

	v, err := parse(strings.TrimSpace(raw))
	if err != nil {
		return zero, fmt.Errorf("attribute value %q at path %s: %w", raw, r.Path(), err)
	}

	return v, nil
}

func parseText[T any](r *Reader, parse func(string) (T, error)) (T, error) {
	var zero T

	raw, err := r.NextTextContent()
	if err != nil {
		return zero, err
	}

	v, err := parse(strings.TrimSpace(raw))
	if err != nil {
		return zero, fmt.Errorf("text content %q at path %s: %w", raw, r.Path(), err)
	}

	return v, nil
}

func describe(tok xml.Token) string {
	switch t := tok.(type) {
	case xml.StartElement:
		return "<" + qualified(t.Name) + ">"
	case xml.EndElement:
		return "</" + qualified(t.Name) + ">"
	case xml.CharData:
		return "text"
	default:
		return "end of document"
	}
}
