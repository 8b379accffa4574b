// Package convert implements the converter resolution chain: given a value type and an
// optional custom converter reference, it decides how a scalar value is read and written.
//
// Resolution order, first match wins:
//  1. a custom converter reference
//  2. a built-in converter, when the value's scalar kind is configured to use one
//  3. a typed accessor of the token stream for the remaining scalar kinds
//  4. delegation to the type adapter of a user type
package convert

import (
	"fmt"
	"slices"
	"strings"

	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
)

// Chain resolves read and write expressions for value types.
type Chain struct {
	primitive map[model.ScalarKind]bool
}

// NewChain creates a Chain that routes the given kinds through built-in converters.
func NewChain(primitiveConverters ...model.ScalarKind) Chain {
	c := Chain{primitive: make(map[model.ScalarKind]bool, len(primitiveConverters))}
	for _, k := range primitiveConverters {
		c.primitive[k] = true
	}

	return c
}

// UsesPrimitiveConverter reports whether k is configured for a built-in converter.
func (c Chain) UsesPrimitiveConverter(k model.ScalarKind) bool {
	return c.primitive[k]
}

// PrimitiveConverters returns the configured kinds in kind order.
func (c Chain) PrimitiveConverters() []model.ScalarKind {
	var out []model.ScalarKind

	for _, k := range model.Kinds() {
		if c.primitive[k] {
			out = append(out, k)
		}
	}

	return out
}

// ResolveRead returns the expression reading a value of vt from src.
func (c Chain) ResolveRead(vt model.ValueType, converter string, src ir.Source) ir.ReadExpr {
	if converter != "" {
		return ir.ConverterRead{Source: src, Converter: converter, Type: vt.ID}
	}

	if k := vt.Scalar(); k != model.KindInvalid {
		if c.primitive[k] {
			return ir.ConverterRead{Source: src, Type: model.Builtin(k.GoName())}
		}

		return ir.ScalarRead{Source: src, Kind: k}
	}

	return ir.DelegateRead{Type: vt.ID}
}

// ResolveWrite returns the expression writing a value of vt.
func (c Chain) ResolveWrite(vt model.ValueType, converter string) ir.WriteExpr {
	if converter != "" {
		return ir.ConverterWrite{Converter: converter, Type: vt.ID}
	}

	if k := vt.Scalar(); k != model.KindInvalid {
		if c.primitive[k] {
			return ir.ConverterWrite{Type: model.Builtin(k.GoName())}
		}

		return ir.ScalarWrite{Kind: k}
	}

	return ir.DelegateWrite{Type: vt.ID}
}

// ParseKinds turns configuration spellings into scalar kinds. Both Go spellings
// ("float64") and kind names ("Double") are accepted; duplicates collapse.
func ParseKinds(names []string) ([]model.ScalarKind, error) {
	var (
		out     []model.ScalarKind
		unknown []string
	)

	for _, name := range names {
		k, ok := model.ParseScalarKind(strings.TrimSpace(name))
		if !ok {
			unknown = append(unknown, name)
			continue
		}

		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}

	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown primitive kinds: %s", strings.Join(unknown, ", "))
	}

	return out, nil
}
