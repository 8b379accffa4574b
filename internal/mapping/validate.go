package mapping

import (
	"fmt"

	"xmlbind-generator/internal/convert"
	"xmlbind-generator/internal/diagnostic"
	"xmlbind-generator/internal/match"
	"xmlbind-generator/primitive"
)

// Mapping file diagnostic codes.
const (
	CodeMappingIsNil       = "mapping_is_nil"
	CodeMissingType        = "missing_type"
	CodeDuplicateType      = "duplicate_type"
	CodeMissingMember      = "missing_member"
	CodeUnknownKind        = "unknown_kind"
	CodeMissingValueType   = "missing_value_type"
	CodeUnexpectedMatchers = "unexpected_matchers"
	CodeUnknownConverter   = "unknown_converter"
	CodeInvalidConverter   = "invalid_converter"
	CodeInvalidPrimitives  = "invalid_primitive_converters"
	CodeInvalidConstructor = "invalid_constructor"
)

// Validate checks the structure of a mapping file. It doesn't check the model
// invariants themselves; those are reported by model.Validate once the file is built.
func Validate(mf *MappingFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError(CodeMappingIsNil, "mapping file is nil", "", "")
		return res
	}

	if _, err := convert.ParseKinds(mf.PrimitiveConverters); err != nil {
		res.AddError(CodeInvalidPrimitives, err.Error(), "", "")
	}

	registry, errs := BuildRegistry(mf)
	for _, err := range errs {
		res.AddError(CodeInvalidConverter, err.Error(), "", "")
	}

	seen := make(map[string]bool, len(mf.Types))

	for i := range mf.Types {
		tm := &mf.Types[i]
		if tm.Type == "" {
			res.AddError(CodeMissingType, fmt.Sprintf("type %d has no name", i), "", "")
			continue
		}

		id := ResolveTypeID(tm.Type, mf.Package).String()
		if seen[id] {
			res.AddError(CodeDuplicateType, fmt.Sprintf("type %s is declared twice", id), id, "")
			continue
		}

		seen[id] = true

		validateType(res, registry, tm, id)
	}

	return res
}

func validateType(res *diagnostic.Diagnostics, registry *ConverterRegistry, tm *TypeMapping, id string) {
	params := 0

	for j := range tm.Fields {
		fm := &tm.Fields[j]
		path := fm.Member

		if fm.Member == "" {
			res.AddError(CodeMissingMember, fmt.Sprintf("field %d has no member", j), id, "")
			continue
		}

		if !fm.Kind.IsValid() {
			res.AddError(CodeUnknownKind, fmt.Sprintf("member %s has unknown kind %q", fm.Member, fm.Kind), id, path)
			continue
		}

		if fm.Type == "" {
			res.AddError(CodeMissingValueType, fmt.Sprintf("member %s has no type", fm.Member), id, path)
		}

		if len(fm.Matchers) > 0 && !fm.Kind.IsPolymorphic() {
			res.AddError(CodeUnexpectedMatchers,
				fmt.Sprintf("member %s declares matchers but is a %s", fm.Member, fm.Kind), id, path)
		}

		if fm.Converter != "" && !registry.Has(fm.Converter) && !primitive.Has(fm.Converter) {
			known := append(registry.Names(), primitive.Names(primitive.CategoryAll)...)
			res.AddError(CodeUnknownConverter,
				fmt.Sprintf("member %s refers to undefined converter %q%s", fm.Member, fm.Converter,
					match.DidYouMean(fm.Converter, known)), id, path)
		}

		if fm.Param != nil {
			params++
		}
	}

	switch {
	case tm.Constructor == "" && params > 0:
		res.AddError(CodeInvalidConstructor,
			fmt.Sprintf("%d members are constructor parameters but no constructor is named", params), id, "")
	case tm.Constructor != "" && params == 0:
		res.AddError(CodeInvalidConstructor,
			fmt.Sprintf("constructor %s has no parameter members", tm.Constructor), id, "")
	}
}
