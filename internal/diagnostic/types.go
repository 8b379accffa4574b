package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"xmlbind-generator/internal/common"
)

// Diagnostic codes produced by model validation and compilation.
const (
	CodeDuplicateName       = "DUPLICATE_NAME"
	CodeDuplicateMatcher    = "DUPLICATE_MATCHER"
	CodeEmptyMatchers       = "EMPTY_MATCHERS"
	CodeNotASubtype         = "NOT_A_SUBTYPE"
	CodeAmbiguousHierarchy  = "AMBIGUOUS_POLYMORPHIC_MAPPING"
	CodeUnknownType         = "UNKNOWN_TYPE"
	CodeInvalidField        = "INVALID_FIELD"
	CodeConverterNotFound   = "CONVERTER_NOT_FOUND"
	CodeUnsupportedTag      = "UNSUPPORTED_TAG"
	CodeConstructorMismatch = "CONSTRUCTOR_MISMATCH"
)

// Diagnostics holds all diagnostic information from validation and compilation.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Type identifies the declared type this relates to (if any).
	Type string
	// Path is the XML path inside the type, e.g. "channel/item" (if any).
	Path string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typeName, path string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Path:     path,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, path string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Path:     path,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typeName, path string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Path:     path,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasCode reports whether any error carries the given code.
func (d Diagnostics) HasCode(code string) bool {
	for _, e := range d.Errors {
		if e.Code == code {
			return true
		}
	}

	return false
}

// ForType returns the error diagnostics attached to typeName.
func (d *Diagnostics) ForType(typeName string) []Diagnostic {
	var out []Diagnostic

	for _, e := range d.Errors {
		if e.Type == typeName {
			out = append(out, e)
		}
	}

	return out
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.Path != "" {
		prefix = append(prefix, d.Path)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
