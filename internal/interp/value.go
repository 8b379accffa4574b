package interp

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
	"xmlbind-generator/xmlbind"
)

var errNilValue = errors.New("nil value")

// coerce makes v storable in a location of type t, boxing and unboxing pointers and
// converting between numeric kinds.
func coerce(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Zero(t), nil
	}

	if v.Type().AssignableTo(t) {
		return v, nil
	}

	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Zero(t), nil
		}

		return coerce(v.Elem(), t)
	}

	if t.Kind() == reflect.Pointer {
		inner, err := coerce(v, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		p := reflect.New(t.Elem())
		p.Elem().Set(inner)

		return p, nil
	}

	if convertible(v.Kind(), t.Kind()) {
		return convert(v, t)
	}

	return reflect.Value{}, fmt.Errorf("cannot store %s in %s", v.Type(), t)
}

// convert is reflect.Value.Convert that fails instead of truncating numbers
// which don't fit t.
func convert(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if v.Kind() != t.Kind() && numeric(v.Kind()) && !fits(v, t) {
		return reflect.Value{}, fmt.Errorf("%v overflows %s", v.Interface(), t)
	}

	return v.Convert(t), nil
}

func fits(v reflect.Value, t reflect.Type) bool {
	dst := reflect.Zero(t)

	switch {
	case v.CanInt():
		n := v.Int()

		switch {
		case dst.CanInt():
			return !dst.OverflowInt(n)
		case dst.CanUint():
			return n >= 0 && !dst.OverflowUint(uint64(n))
		default:
			return !dst.OverflowFloat(float64(n))
		}
	case v.CanUint():
		n := v.Uint()

		switch {
		case dst.CanInt():
			return n <= math.MaxInt64 && !dst.OverflowInt(int64(n))
		case dst.CanUint():
			return !dst.OverflowUint(n)
		default:
			return !dst.OverflowFloat(float64(n))
		}
	default:
		f := v.Float()

		switch {
		case dst.CanInt():
			return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 && !dst.OverflowInt(int64(f))
		case dst.CanUint():
			return f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 && !dst.OverflowUint(uint64(f))
		default:
			return !dst.OverflowFloat(f)
		}
	}
}

// convertible limits reflect conversions to same-kind and numeric ones so that an int
// never becomes a rune string.
func convertible(from, to reflect.Kind) bool {
	return from == to || (numeric(from) && numeric(to))
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// indirect strips pointers and interfaces.
func indirect(v reflect.Value) (reflect.Value, error) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, errNilValue
		}

		v = v.Elem()
	}

	if !v.IsValid() {
		return reflect.Value{}, errNilValue
	}

	return v, nil
}

// present reports whether v passes a presence test.
func present(v reflect.Value, p ir.Presence) bool {
	if !v.IsValid() {
		return false
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		if v.IsNil() {
			return false
		}
	}

	if p == ir.PresenceNonZero {
		return !v.IsZero()
	}

	return true
}

// formatScalar renders v with the typed formatter of kind.
func formatScalar(v reflect.Value, kind model.ScalarKind) (string, error) {
	v, err := indirect(v)
	if err != nil {
		return "", err
	}

	switch {
	case kind == model.KindString && v.Kind() == reflect.String:
		return xmlbind.FormatString(v.String()), nil
	case kind == model.KindBool && v.Kind() == reflect.Bool:
		return xmlbind.FormatBool(v.Bool()), nil
	case kind == model.KindDouble && v.CanFloat():
		return xmlbind.FormatDouble(v.Float()), nil
	case (kind == model.KindInt || kind == model.KindLong) && v.CanInt():
		return xmlbind.FormatLong(v.Int()), nil
	case (kind == model.KindInt || kind == model.KindLong) && v.CanUint():
		return xmlbind.FormatLong(int64(v.Uint())), nil
	default:
		return "", fmt.Errorf("cannot format %s as %s", v.Type(), kind)
	}
}

// builtinTypes are the Go types the built-in type converters accept.
var builtinTypes = map[string]reflect.Type{
	"string":  reflect.TypeFor[string](),
	"bool":    reflect.TypeFor[bool](),
	"int":     reflect.TypeFor[int](),
	"int64":   reflect.TypeFor[int64](),
	"float64": reflect.TypeFor[float64](),
}

// canonical converts v to the Go type the built-in converter of typeName accepts.
func canonical(v reflect.Value, typeName string) (any, error) {
	t, ok := builtinTypes[typeName]
	if !ok {
		return v.Interface(), nil
	}

	v, err := indirect(v)
	if err != nil {
		return nil, err
	}

	if v.Type() == t {
		return v.Interface(), nil
	}

	if convertible(v.Kind(), t.Kind()) {
		cv, err := convert(v, t)
		if err != nil {
			return nil, err
		}

		return cv.Interface(), nil
	}

	return nil, fmt.Errorf("cannot convert %s to %s", v.Type(), t)
}
