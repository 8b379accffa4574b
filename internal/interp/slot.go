package interp

import (
	"fmt"
	"reflect"
	"slices"

	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
)

// frame is the value under construction or being written.
type frame struct {
	// value is a *T; it stays invalid for constructor types until the constructor ran.
	value reflect.Value
	temps map[string]reflect.Value
}

// slot reads and stores one member of a frame.
type slot struct {
	name string
	typ  reflect.Type
	get  func(f *frame) (reflect.Value, error)
	set  func(f *frame, v reflect.Value) error
}

// add appends v to a sequence slot, allocating the slice on first use.
func (s slot) add(f *frame, v reflect.Value) error {
	if s.typ.Kind() != reflect.Slice {
		return fmt.Errorf("member %s: %s is not a slice", s.name, s.typ)
	}

	current, err := s.get(f)
	if err != nil {
		return err
	}

	item, err := coerce(v, s.typ.Elem())
	if err != nil {
		return fmt.Errorf("member %s: %w", s.name, err)
	}

	if !current.IsValid() {
		current = reflect.Zero(s.typ)
	}

	return s.set(f, reflect.Append(current, item))
}

func (s slot) store(dst reflect.Value, v reflect.Value) error {
	cv, err := coerce(v, dst.Type())
	if err != nil {
		return fmt.Errorf("member %s: %w", s.name, err)
	}

	dst.Set(cv)

	return nil
}

// slot resolves the location behind target on the bound type.
func (b *builder) slot(target ir.Target) (slot, error) {
	if target.Temp != "" {
		return b.tempSlot(target)
	}

	switch target.Access.Kind {
	case model.AccessField:
		return b.fieldSlot(target)
	case model.AccessMethods:
		return b.methodSlot(target, target.Access.Getter, target.Access.Setter)
	case model.AccessConstructor:
		return b.methodSlot(target, target.Access.Getter, "")
	default:
		return slot{}, fmt.Errorf("member %s: unknown access %s", target.Name, target.Access.Kind)
	}
}

func (b *builder) tempSlot(target ir.Target) (slot, error) {
	t, ok := b.tempTypes[target.Temp]
	if !ok {
		return slot{}, fmt.Errorf("member %s: unknown temporary %s", target.Name, target.Temp)
	}

	s := slot{name: target.Name, typ: t}
	s.get = func(f *frame) (reflect.Value, error) {
		return f.temps[target.Temp], nil
	}
	s.set = func(f *frame, v reflect.Value) error {
		return s.store(f.temps[target.Temp], v)
	}

	return s, nil
}

func (b *builder) fieldSlot(target ir.Target) (slot, error) {
	member := target.Access.Member
	if member == "" {
		member = target.Name
	}

	sf, ok := b.typ.FieldByName(member)
	if !ok || !sf.IsExported() {
		return slot{}, fmt.Errorf("%w: %s has no exported field %s", ErrUnbound, b.typ, member)
	}

	s := slot{name: member, typ: sf.Type}
	s.get = func(f *frame) (reflect.Value, error) {
		return f.value.Elem().FieldByIndexErr(sf.Index)
	}
	s.set = func(f *frame, v reflect.Value) error {
		dst, err := f.value.Elem().FieldByIndexErr(sf.Index)
		if err != nil {
			return err
		}

		return s.store(dst, v)
	}

	return s, nil
}

// methodSlot binds a getter and, unless setter is empty, a setter declared on *T.
func (b *builder) methodSlot(target ir.Target, getter, setter string) (slot, error) {
	pt := reflect.PointerTo(b.typ)

	gm, ok := pt.MethodByName(getter)
	if !ok || gm.Type.NumIn() != 1 || gm.Type.NumOut() != 1 {
		return slot{}, fmt.Errorf("%w: %s has no getter %s", ErrUnbound, b.typ, getter)
	}

	s := slot{name: target.Name, typ: gm.Type.Out(0)}
	s.get = func(f *frame) (reflect.Value, error) {
		return f.value.Method(gm.Index).Call(nil)[0], nil
	}
	s.set = func(*frame, reflect.Value) error {
		return fmt.Errorf("member %s: no setter", target.Name)
	}

	if setter == "" {
		return s, nil
	}

	sm, ok := pt.MethodByName(setter)
	if !ok || sm.Type.NumIn() != 2 {
		return slot{}, fmt.Errorf("%w: %s has no setter %s", ErrUnbound, b.typ, setter)
	}

	in := sm.Type.In(1)
	s.set = func(f *frame, v reflect.Value) error {
		cv, err := coerce(v, in)
		if err != nil {
			return fmt.Errorf("member %s: %w", target.Name, err)
		}

		out := f.value.Method(sm.Index).Call([]reflect.Value{cv})
		if i := slices.IndexFunc(out, isError); i >= 0 && !out[i].IsNil() {
			return out[i].Interface().(error)
		}

		return nil
	}

	return s, nil
}

var errorType = reflect.TypeFor[error]()

func isError(v reflect.Value) bool {
	return v.Type() == errorType
}
