package repr

import (
	"cmp"
	"reflect"
	"slices"
	"strings"
)

// elements yields the items of a slice, an array, or an iter.Seq function.
// Iteration stops when yield returns false. It reports false when the
// iterator panicked; items yielded before the panic have been consumed.
func elements(v reflect.Value, yield func(reflect.Value) bool) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			if !yield(v.Index(i)) {
				break
			}
		}
		return true
	}
	return iterate(v, func(args []reflect.Value) bool {
		return yield(args[0])
	})
}

// entries yields the key/value pairs of a map or an iter.Seq2 function.
// Built-in maps are visited in sorted key order; iterators keep their own
// order, duplicates included. The result is as for elements.
func entries(v reflect.Value, yield func(k, e reflect.Value) bool) bool {
	if v.Kind() == reflect.Map {
		for _, e := range sortedEntries(v) {
			if !yield(e.key, e.value) {
				break
			}
		}
		return true
	}
	return iterate(v, func(args []reflect.Value) bool {
		return yield(args[0], args[1])
	})
}

// iterable returns v when its kind is one of direct or a function, and
// otherwise the iterator returned by its All method. It reports false when
// All panics.
func iterable(v reflect.Value, direct ...reflect.Kind) (reflect.Value, bool) {
	if v.Kind() == reflect.Func || slices.Contains(direct, v.Kind()) {
		return v, true
	}
	return call(func() reflect.Value {
		return method(v, "All").Call(nil)[0]
	})
}

// iterate calls seq with a yield function built for its signature.
func iterate(seq reflect.Value, yield func([]reflect.Value) bool) (ok bool) {
	if seq.IsNil() {
		return true
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	yt := seq.Type().In(0)
	fn := reflect.MakeFunc(yt, func(args []reflect.Value) []reflect.Value {
		return []reflect.Value{reflect.ValueOf(yield(args)).Convert(yt.Out(0))}
	})
	seq.Call([]reflect.Value{fn})
	return true
}

type mapEntry struct {
	key, value reflect.Value
}

// sortedEntries reads keys and values together, so entries whose key is not
// equal to itself (NaN) keep their values.
func sortedEntries(v reflect.Value) []mapEntry {
	out := make([]mapEntry, 0, v.Len())
	for it := v.MapRange(); it.Next(); {
		out = append(out, mapEntry{key: it.Key(), value: it.Value()})
	}
	slices.SortStableFunc(out, func(a, b mapEntry) int {
		return compareKeys(a.key, b.key)
	})
	return out
}

// compareKeys orders map keys the way fmt does when printing maps.
func compareKeys(a, b reflect.Value) int {
	if a.Type() != b.Type() {
		return strings.Compare(a.Type().String(), b.Type().String())
	}
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.String:
		return strings.Compare(a.String(), b.String())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.Complex64, reflect.Complex128:
		ac, bc := a.Complex(), b.Complex()
		if c := cmp.Compare(real(ac), real(bc)); c != 0 {
			return c
		}
		return cmp.Compare(imag(ac), imag(bc))
	case reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
			return 0
		case a.Bool():
			return 1
		default:
			return -1
		}
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
		return cmp.Compare(a.Pointer(), b.Pointer())
	case reflect.Struct:
		for i := range a.NumField() {
			if c := compareKeys(a.Field(i), b.Field(i)); c != 0 {
				return c
			}
		}
		return 0
	case reflect.Array:
		for i := range a.Len() {
			if c := compareKeys(a.Index(i), b.Index(i)); c != 0 {
				return c
			}
		}
		return 0
	case reflect.Interface:
		switch {
		case a.IsNil() && b.IsNil():
			return 0
		case a.IsNil():
			return -1
		case b.IsNil():
			return 1
		}
		return compareKeys(a.Elem(), b.Elem())
	default:
		return 0
	}
}
