package xmlbind

import "strings"

// namespacePrefix marks namespace declarations, which are never reported as unmapped.
const namespacePrefix = "xmlns"

// UnmappedAttribute skips the value of the attribute name and, when cfg raises on
// unread input, reports it.
func UnmappedAttribute(r Reader, cfg *Config, name string) error {
	if err := r.SkipAttributeValue(); err != nil {
		return err
	}

	if cfg.ExceptionOnUnreadXML && !strings.HasPrefix(name, namespacePrefix) {
		return &UnmappedError{Attribute: true, Name: name, Path: r.Path()}
	}

	return nil
}

// UnmappedElement skips the rest of the element name, its end included, and, when cfg
// raises on unread input, reports it with the path of its parent.
func UnmappedElement(r Reader, cfg *Config, name string) error {
	if err := r.SkipRemainingElement(); err != nil {
		return err
	}

	if cfg.ExceptionOnUnreadXML {
		return &UnmappedError{Name: name, Path: r.Path()}
	}

	return nil
}

// IgnoreAttributes consumes every remaining attribute under the unmapped input policy.
func IgnoreAttributes(r Reader, cfg *Config) error {
	return ReadAttributes(r, func(name string) error {
		return UnmappedAttribute(r, cfg, name)
	})
}
