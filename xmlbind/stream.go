package xmlbind

import (
	"fmt"
	"strings"
)

// Reader is a pull-based XML token reader.
//
// The Has methods report what the next token is and never fail; the first error met
// while peeking is kept and returned by Err.
type Reader interface {
	// BeginElement consumes the start of the next element.
	BeginElement() error
	// EndElement consumes the end of the current element.
	EndElement() error

	HasElement() bool
	HasAttribute() bool
	HasTextContent() bool

	// NextElementName returns the name of the element just begun.
	NextElementName() (string, error)
	NextAttributeName() (string, error)
	NextAttributeValue() (string, error)
	NextAttributeValueAsBool() (bool, error)
	NextAttributeValueAsInt() (int, error)
	NextAttributeValueAsLong() (int64, error)
	NextAttributeValueAsDouble() (float64, error)
	// NextTextContent returns the text up to the next element boundary; "" if none.
	NextTextContent() (string, error)
	NextTextContentAsBool() (bool, error)
	NextTextContentAsInt() (int, error)
	NextTextContentAsLong() (int64, error)
	NextTextContentAsDouble() (float64, error)

	SkipAttributeValue() error
	// SkipRemainingElement skips the rest of the current element, its end included.
	SkipRemainingElement() error
	SkipTextContent() error

	// Path is the slash separated path of open elements, e.g. "/rss/channel".
	Path() string
	Err() error
}

// Writer is a push-based XML token writer.
type Writer interface {
	BeginElement(name string) error
	EndElement() error
	Attribute(name, value string) error
	TextContent(value string) error
	TextContentAsCData(value string) error
}

// ReadAttributes calls fn with the name of every remaining attribute of the current
// element. fn must consume the attribute value.
func ReadAttributes(r Reader, fn func(name string) error) error {
	for r.HasAttribute() {
		name, err := r.NextAttributeName()
		if err != nil {
			return err
		}

		if err := fn(name); err != nil {
			return err
		}
	}

	return r.Err()
}

// ReadChildren consumes the content of the current element up to its end. Elements
// are begun and named before onElement runs, which must consume them up to and
// including their end. The text runs around children are joined and handed to
// onText once, after the last child, through a Reader replaying them; a nil
// onText drops the text. Whitespace-only runs only count in elements without
// children.
func ReadChildren(r Reader, onElement func(name string) error, onText func(text Reader) error) error {
	var (
		text     strings.Builder
		seen     bool
		children bool
	)

	for {
		switch {
		case r.HasElement():
			if err := r.BeginElement(); err != nil {
				return err
			}

			name, err := r.NextElementName()
			if err != nil {
				return err
			}

			if err := onElement(name); err != nil {
				return err
			}

			children = true
		case r.HasTextContent():
			run, err := r.NextTextContent()
			if err != nil {
				return err
			}

			if children && strings.TrimSpace(run) == "" {
				continue
			}

			text.WriteString(run)
			seen = true
		default:
			if err := r.Err(); err != nil {
				return err
			}

			if !seen || onText == nil {
				return nil
			}

			return onText(&textReader{Reader: r, text: text.String()})
		}
	}
}

// textReader replays collected text content once; everything else goes to the
// underlying Reader.
type textReader struct {
	Reader
	text string
	read bool
}

func (t *textReader) HasTextContent() bool {
	return !t.read
}

func (t *textReader) NextTextContent() (string, error) {
	if t.read {
		return "", nil
	}

	t.read = true

	return t.text, nil
}

func (t *textReader) SkipTextContent() error {
	_, err := t.NextTextContent()
	return err
}

func (t *textReader) NextTextContentAsBool() (bool, error) {
	return parseReplayed(t, ParseBool)
}

func (t *textReader) NextTextContentAsInt() (int, error) {
	return parseReplayed(t, ParseInt)
}

func (t *textReader) NextTextContentAsLong() (int64, error) {
	return parseReplayed(t, ParseLong)
}

func (t *textReader) NextTextContentAsDouble() (float64, error) {
	return parseReplayed(t, ParseDouble)
}

func parseReplayed[T any](t *textReader, parse func(string) (T, error)) (T, error) {
	raw, _ := t.NextTextContent()

	v, err := parse(strings.TrimSpace(raw))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("text content %q at path %s: %w", raw, t.Path(), err)
	}

	return v, nil
}
