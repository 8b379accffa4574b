package mapping

import (
	"errors"
	"fmt"

	"xmlbind-generator/internal/convert"
	"xmlbind-generator/internal/model"
	"xmlbind-generator/primitive"
)

// ErrInvalidMapping indicates the mapping file failed structural validation.
var ErrInvalidMapping = errors.New("invalid mapping file")

// Schema is a mapping file translated into model terms.
type Schema struct {
	// Model is the unlinked field model of every declared type.
	Model *model.Model
	// Hierarchy holds the declared extends edges.
	Hierarchy *model.StaticHierarchy
	// PrimitiveConverters is the parsed primitive_converters list.
	PrimitiveConverters []model.ScalarKind
	// Converters holds the named converter definitions.
	Converters *ConverterRegistry
	// StandardConverters lists the standard converters fields refer to without
	// the file defining them, sorted.
	StandardConverters []string
	// Package is the default package path of the file.
	Package string
}

// Build validates mf and translates it into a Schema.
func Build(mf *MappingFile) (*Schema, error) {
	if res := Validate(mf); res.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMapping, res.Error())
	}

	kinds, err := convert.ParseKinds(mf.PrimitiveConverters)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMapping, err)
	}

	registry, _ := BuildRegistry(mf)

	s := &Schema{
		Hierarchy:           model.NewStaticHierarchy(),
		PrimitiveConverters: kinds,
		Converters:          registry,
		Package:             mf.Package,
	}

	b := model.NewBuilder()

	for i := range mf.Types {
		tm := &mf.Types[i]
		id := ResolveTypeID(tm.Type, mf.Package)

		for _, super := range tm.Extends {
			s.Hierarchy.Declare(id, ResolveTypeID(super, mf.Package))
		}

		tb := b.Type(id, tm.XMLName)
		if tm.Constructor != "" {
			tb.Constructor(tm.Constructor, countParams(tm))
		}

		for j := range tm.Fields {
			addField(tb, &tm.Fields[j], mf.Package)
		}
	}

	s.Model = b.Build()
	s.StandardConverters = standardConverters(mf, registry)

	return s, nil
}

func standardConverters(mf *MappingFile, registry *ConverterRegistry) []string {
	var names []string

	for i := range mf.Types {
		for _, fm := range mf.Types[i].Fields {
			if fm.Converter != "" && !registry.Has(fm.Converter) {
				names = append(names, fm.Converter)
			}
		}
	}

	return primitive.Standard(names...)
}

func countParams(tm *TypeMapping) int {
	n := 0

	for i := range tm.Fields {
		if tm.Fields[i].Param != nil {
			n++
		}
	}

	return n
}

func addField(tb *model.TypeBuilder, fm *FieldMapping, pkg string) {
	vt := ResolveValueType(fm.Type, pkg)
	access := fm.Access()
	name := fm.XMLName()

	opts := []model.FieldOption{model.WithMember(fm.Member)}
	if segs := fm.PathSegments(); len(segs) > 0 {
		opts = append(opts, model.WithPath(segs...))
	}

	if fm.Converter != "" {
		opts = append(opts, model.WithConverter(fm.Converter))
	}

	if fm.CData {
		opts = append(opts, model.WithCData())
	}

	if fm.OmitEmpty {
		opts = append(opts, model.WithOmitEmpty())
	}

	switch fm.Kind {
	case KindAttribute:
		tb.Attribute(name, vt, access, opts...)
	case KindProperty:
		tb.Property(name, vt, access, opts...)
	case KindText:
		tb.Text(vt, access, opts...)
	case KindElement:
		tb.Element(name, vt, access, opts...)
	case KindList:
		tb.List(name, vt, access, opts...)
	case KindPolymorphic:
		tb.Polymorphic(vt, access, matchers(fm.Matchers, pkg), opts...)
	case KindPolymorphicList:
		tb.PolymorphicList(vt, access, matchers(fm.Matchers, pkg), opts...)
	}
}

func matchers(list MatcherList, pkg string) []model.Matcher {
	out := make([]model.Matcher, 0, len(list))
	for _, m := range list {
		out = append(out, model.Matcher{Tag: m.Tag, Type: ResolveTypeID(m.Type, pkg)})
	}

	return out
}
