package klass

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"sync"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnknownField = errors.New("unknown field")
	ErrNotStruct    = errors.New("not a struct")
	ErrReadOnly     = errors.New("read-only value")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrNoFields     = errors.New("no fields to compare")
	ErrNilEmbedded  = errors.New("field promoted through nil embedded pointer")
)

type fieldTable struct {
	names []string
	index map[string][]int
}

var tables sync.Map // reflect.Type -> *fieldTable

func tableFor(t reflect.Type) *fieldTable {
	if ft, ok := tables.Load(t); ok {
		return ft.(*fieldTable)
	}
	ft := &fieldTable{index: make(map[string][]int)}
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("attr"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		if _, dup := ft.index[name]; dup {
			continue
		}
		ft.names = append(ft.names, name)
		ft.index[name] = f.Index
	}
	actual, _ := tables.LoadOrStore(t, ft)
	return actual.(*fieldTable)
}

// fieldAt resolves idx on v. It reports false when the path crosses a nil
// embedded pointer.
func fieldAt(v reflect.Value, idx []int) (reflect.Value, bool) {
	f, err := v.FieldByIndexErr(idx)
	if err != nil {
		return reflect.Value{}, false
	}
	return f, true
}

// Attrs is a map view over a struct's exported fields.
type Attrs struct {
	v        reflect.Value
	table    *fieldTable
	writable bool
}

// NewAttrs returns a view over v, which must be a struct or a non-nil
// pointer to one. Only a pointer yields a writable view.
func NewAttrs(v any) (*Attrs, error) {
	rv := reflect.ValueOf(v)
	writable := false
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %T", ErrNotStruct, v)
		}
		rv = rv.Elem()
		writable = true
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrNotStruct, v)
	}
	return &Attrs{v: rv, table: tableFor(rv.Type()), writable: writable}, nil
}

// Get returns the value of the named field. A field promoted through a nil
// embedded pointer is reported as absent.
func (a *Attrs) Get(key string) (any, bool) {
	idx, ok := a.table.index[key]
	if !ok {
		return nil, false
	}
	f, ok := fieldAt(a.v, idx)
	if !ok {
		return nil, false
	}
	return f.Interface(), true
}

// Set assigns value to the named field. A nil value zeroes the field.
func (a *Attrs) Set(key string, value any) error {
	f, err := a.settable(key)
	if err != nil {
		return err
	}
	if value == nil {
		f.SetZero()
		return nil
	}
	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(f.Type()) {
		return fmt.Errorf("%w: cannot assign %s to %s field %q", ErrTypeMismatch, rv.Type(), f.Type(), key)
	}
	f.Set(rv)
	return nil
}

// Delete resets the named field to its zero value.
func (a *Attrs) Delete(key string) error {
	f, err := a.settable(key)
	if err != nil {
		return err
	}
	f.SetZero()
	return nil
}

func (a *Attrs) settable(key string) (reflect.Value, error) {
	idx, ok := a.table.index[key]
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %q on %s", ErrUnknownField, key, a.v.Type())
	}
	if !a.writable {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrReadOnly, a.v.Type())
	}
	f, ok := fieldAt(a.v, idx)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %q on %s", ErrNilEmbedded, key, a.v.Type())
	}
	return f, nil
}

// Contains reports whether key names a field.
func (a *Attrs) Contains(key string) bool {
	_, ok := a.table.index[key]
	return ok
}

// Keys returns the field names in declaration order.
func (a *Attrs) Keys() []string {
	out := make([]string, len(a.table.names))
	copy(out, a.table.names)
	return out
}

// Len returns the number of fields.
func (a *Attrs) Len() int { return len(a.table.names) }

// All yields name/value pairs in declaration order, skipping fields
// promoted through a nil embedded pointer.
func (a *Attrs) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, name := range a.table.names {
			f, ok := fieldAt(a.v, a.table.index[name])
			if !ok {
				continue
			}
			if !yield(name, f.Interface()) {
				return
			}
		}
	}
}
