package repr

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Field is one named field of a plain aggregate.
type Field struct {
	Name  string
	Index int
	Value reflect.Value
}

// fieldNameCache caches declared field names by struct type.
var fieldNameCache sync.Map // key: reflect.Type, val: []string

// FieldCount returns the number of fields of the aggregate type t.
func FieldCount(t reflect.Type) (int, error) {
	names, err := FieldNames(t)
	return len(names), err
}

// FieldNames returns the field names of the aggregate type t in declaration
// order. It fails with ErrNotAggregate when t is not classified [Aggregate].
func FieldNames(t reflect.Type) ([]string, error) {
	if t == nil || ClassifyType(t) != Aggregate {
		return nil, fmt.Errorf("%w: %v", ErrNotAggregate, t)
	}
	return slices.Clone(fieldNames(t)), nil
}

// Fields decomposes v into its named fields in declaration order.
func Fields(v any) ([]Field, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || ClassifyType(rv.Type()) != Aggregate {
		return nil, fmt.Errorf("%w: %T", ErrNotAggregate, v)
	}
	return decompose(rv), nil
}

func fieldNames(t reflect.Type) []string {
	if names, ok := fieldNameCache.Load(t); ok {
		return names.([]string)
	}
	names := make([]string, t.NumField())
	for i := range names {
		names[i] = t.Field(i).Name
	}
	fieldNameCache.Store(t, names)
	return names
}

func decompose(v reflect.Value) []Field {
	names := fieldNames(v.Type())
	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i] = Field{Name: name, Index: i, Value: v.Field(i)}
	}
	return fields
}
