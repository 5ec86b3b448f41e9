package klass

import (
	"fmt"
	"reflect"
	"strings"
)

// Equality compares values of struct type T by a fixed list of fields.
type Equality[T any] struct {
	fields []string
	index  [][]int
}

// NewEquality builds a comparator over the named fields of T. T must be a
// struct type and every name must resolve to a field.
func NewEquality[T any](fields ...string) (*Equality[T], error) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFields, t)
	}
	table := tableFor(t)
	e := &Equality[T]{fields: fields, index: make([][]int, len(fields))}
	for i, name := range fields {
		idx, ok := table.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q on %s", ErrUnknownField, name, t)
		}
		e.index[i] = idx
	}
	return e, nil
}

// Fields returns the compared field names.
func (e *Equality[T]) Fields() []string { return e.fields }

// Equal reports whether a and b are the same pointer or agree on every
// compared field.
func (e *Equality[T]) Equal(a, b *T) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	av, bv := reflect.ValueOf(a).Elem(), reflect.ValueOf(b).Elem()
	for _, idx := range e.index {
		x, xok := fieldAt(av, idx)
		y, yok := fieldAt(bv, idx)
		if xok != yok {
			return false
		}
		if xok && !reflect.DeepEqual(x.Interface(), y.Interface()) {
			return false
		}
	}
	return true
}

// NotEqual is the negation of [Equality.Equal].
func (e *Equality[T]) NotEqual(a, b *T) bool { return !e.Equal(a, b) }

// Equal compares a and b, which need not share a type, on the named fields.
// A field missing from both sides matches; missing from one side does not.
func Equal(a, b any, fields ...string) bool {
	if samePointer(a, b) {
		return true
	}
	av, bv := structValue(a), structValue(b)
	for _, name := range fields {
		x, xok := field(av, name)
		y, yok := field(bv, name)
		if xok != yok {
			return false
		}
		if xok && !reflect.DeepEqual(x, y) {
			return false
		}
	}
	return true
}

func samePointer(a, b any) bool {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	return av.Kind() == reflect.Pointer && bv.Kind() == reflect.Pointer &&
		av.Type() == bv.Type() && av.Pointer() == bv.Pointer()
}

func structValue(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}
	}
	return rv
}

func field(v reflect.Value, name string) (any, bool) {
	if !v.IsValid() {
		return nil, false
	}
	idx, ok := tableFor(v.Type()).index[name]
	if !ok {
		return nil, false
	}
	f, ok := fieldAt(v, idx)
	if !ok {
		return nil, false
	}
	return f.Interface(), true
}

// Getter returns a function that follows a dotted path such as
// "Pkg.Version.Major" through struct fields and string-keyed maps.
func Getter(path string) func(any) (any, error) {
	parts := strings.Split(path, ".")
	return func(v any) (any, error) {
		cur := v
		for _, part := range parts {
			next, err := step(cur, part)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			cur = next
		}
		return cur, nil
	}
}

func step(v any, name string) (any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: %q on nil", ErrUnknownField, name)
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: %q on nil", ErrUnknownField, name)
	}
	switch rv.Kind() {
	case reflect.Struct:
		if got, ok := field(rv, name); ok {
			return got, nil
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			if got := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key())); got.IsValid() {
				return got.Interface(), nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q on %s", ErrUnknownField, name, rv.Type())
}
