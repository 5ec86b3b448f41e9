// Package klass adapts struct fields to map-style access and derives
// equality from a list of field names.
//
// [Attrs] exposes a struct's exported fields through Get/Set/Delete. The
// field table for each struct type is computed once and shared.
// [Equality] compares two values field by field, and [Getter] follows a
// dotted path through nested structs and string-keyed maps.
//
// Fields are addressed by name, or by the name in an `attr:"..."` tag.
// A field tagged `attr:"-"` is hidden.
package klass
