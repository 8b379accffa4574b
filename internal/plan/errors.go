package plan

import (
	"fmt"
	"strings"

	"xmlbind-generator/internal/diagnostic"
	"xmlbind-generator/internal/model"
)

// TypeError reports that compiling one declared type failed.
type TypeError struct {
	Type model.TypeID
	Err  error
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("compile %s: %v", e.Type, e.Err)
}

func (e *TypeError) Unwrap() error {
	return e.Err
}

// InvalidTypeError carries the error diagnostics that prevent a type from compiling.
// It matches model.ErrInvalidModel.
type InvalidTypeError struct {
	Diagnostics []diagnostic.Diagnostic
}

func (e *InvalidTypeError) Error() string {
	parts := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		parts = append(parts, d.String())
	}

	return fmt.Sprintf("%v: %s", model.ErrInvalidModel, strings.Join(parts, "; "))
}

func (e *InvalidTypeError) Unwrap() error {
	return model.ErrInvalidModel
}
