package repr

import (
	"database/sql/driver"
	"encoding"
	"fmt"
	"reflect"
	"sync"
	"time"
)

var (
	reprerType        = reflect.TypeFor[Reprer]()
	stringerType      = reflect.TypeFor[fmt.Stringer]()
	errorType         = reflect.TypeFor[error]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	sharedHandleType  = reflect.TypeFor[SharedHandle]()
	patherType        = reflect.TypeFor[Pather]()
	instantType       = reflect.TypeFor[Instant]()
	valuerType        = reflect.TypeFor[driver.Valuer]()
	pairType          = reflect.TypeFor[pairer]()
	tupleType         = reflect.TypeFor[tupler]()
	optionType        = reflect.TypeFor[optioner]()
	timeType          = reflect.TypeFor[time.Time]()
)

// categoryCache memoizes classification by type.
var categoryCache sync.Map // key: reflect.Type, val: Category

// Classify returns the category of v's dynamic type.
// A nil interface is an absent handle.
func Classify(v any) Category {
	return ClassifyType(reflect.TypeOf(v))
}

// ClassifyType returns the category of t. Every type, including nil,
// receives exactly one category.
func ClassifyType(t reflect.Type) Category {
	c, _ := lookupCategory(t)
	return c
}

// lookupCategory classifies t and reports whether this call stored the
// result in the cache.
func lookupCategory(t reflect.Type) (Category, bool) {
	if t == nil {
		return Handle, false
	}
	if c, ok := categoryCache.Load(t); ok {
		return c.(Category), false
	}
	c := classify(t)
	_, loaded := categoryCache.LoadOrStore(t, c)
	return c, !loaded
}

// classify tests the candidates in priority order; the first match wins.
func classify(t reflect.Type) Category {
	switch {
	case isHandle(t):
		return Handle
	case t.Kind() == reflect.String:
		return Text
	case isNumeric(t.Kind()):
		return Numeric
	case t != timeType && implementsAny(t, reprerType, stringerType, errorType):
		return Method
	case t != timeType && implementsAny(t, textMarshalerType):
		return Conversion
	case t.Kind() == reflect.Map || isSeq(t, 2):
		return Map
	case implementsAny(t, patherType):
		return Path
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array || isSeq(t, 1):
		return Sequence
	case implementsAny(t, pairType):
		return PairLike
	case implementsAny(t, tupleType):
		return TupleLike
	case isOptional(t):
		return Optional
	case t.Kind() == reflect.Complex64 || t.Kind() == reflect.Complex128:
		return Complex
	case t == timeType || implementsAny(t, instantType):
		return Time
	case isAggregate(t):
		return Aggregate
	default:
		return Opaque
	}
}

func isHandle(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer:
		return true
	}
	return implementsAny(t, sharedHandleType)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// implementsAny reports whether t, or *t for non-pointer types, implements
// one of ifaces. Pointer receivers count: the renderer takes the address of
// a copy when the value itself is not addressable.
func implementsAny(t reflect.Type, ifaces ...reflect.Type) bool {
	var pt reflect.Type
	if t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer {
		pt = reflect.PointerTo(t)
	}
	for _, iface := range ifaces {
		if t.Implements(iface) || (pt != nil && pt.Implements(iface)) {
			return true
		}
	}
	return false
}

// isSeq reports whether t is an iterator function with arity yielded values
// (iter.Seq for 1, iter.Seq2 for 2), or has an All method returning one.
func isSeq(t reflect.Type, arity int) bool {
	if t.Kind() == reflect.Func {
		return isSeqFunc(t, arity)
	}
	m, ok := allMethod(t)
	if !ok {
		return false
	}
	in := m.NumIn()
	if t.Kind() != reflect.Interface {
		in-- // receiver
	}
	return in == 0 && m.NumOut() == 1 && isSeqFunc(m.Out(0), arity)
}

// allMethod returns the type of t's All method, looking at the pointer
// method set when t has no value method of that name.
func allMethod(t reflect.Type) (reflect.Type, bool) {
	m, ok := t.MethodByName("All")
	if !ok && t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer {
		m, ok = reflect.PointerTo(t).MethodByName("All")
	}
	return m.Type, ok
}

func isSeqFunc(t reflect.Type, arity int) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return false
	}
	yield := t.In(0)
	return yield.Kind() == reflect.Func &&
		yield.NumIn() == arity &&
		yield.NumOut() == 1 &&
		yield.Out(0).Kind() == reflect.Bool
}

// isOptional matches Option and the database/sql null wrappers, which are
// driver.Valuer structs carrying a Valid flag next to the wrapped value.
func isOptional(t reflect.Type) bool {
	if implementsAny(t, optionType) {
		return true
	}
	if t.Kind() != reflect.Struct || t.NumField() < 2 || !implementsAny(t, valuerType) {
		return false
	}
	f, ok := t.FieldByName("Valid")
	return ok && len(f.Index) == 1 && f.Index[0] != 0 &&
		f.Type.Kind() == reflect.Bool && t.Field(0).IsExported()
}

// isAggregate reports whether t is a struct that can be built field by field
// from any package, i.e. one whose fields are all exported.
func isAggregate(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := range t.NumField() {
		if !t.Field(i).IsExported() {
			return false
		}
	}
	return true
}
