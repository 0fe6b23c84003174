package repr

import (
	"reflect"
	"sync/atomic"
)

// Markers for the carrier types below. The methods are unexported so that
// only this package can claim the pair, tuple, and option categories.
type (
	pairer   interface{ pair() }
	tupler   interface{ values() []any }
	optioner interface{ option() }
)

// Pair is a two-element pair. It renders as "(first, second)".
type Pair[A, B any] struct {
	First  A
	Second B
}

// MakePair returns the pair (a, b).
func MakePair[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

func (Pair[A, B]) pair() {}

// Tuple is a fixed-size heterogeneous sequence. It renders as "(a, b, c)";
// the empty tuple renders as "()".
type Tuple struct {
	elems []any
}

// TupleOf returns a tuple holding values in order.
func TupleOf(values ...any) Tuple {
	return Tuple{elems: values}
}

// Len returns the number of elements.
func (t Tuple) Len() int { return len(t.elems) }

// At returns the i-th element.
func (t Tuple) At(i int) any { return t.elems[i] }

func (t Tuple) values() []any { return t.elems }

// Option holds a value or nothing. Its layout matches sql.Null[T], so both
// render the same way: "None" when empty, otherwise the value itself.
type Option[T any] struct {
	V     T
	Valid bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{V: v, Valid: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.V, o.Valid
}

func (Option[T]) option() {}

// Shared is a reference-counted handle to a value. Copies of a Shared share
// the count only when made through Clone.
type Shared[T any] struct {
	ref *sharedRef[T]
}

type sharedRef[T any] struct {
	value *T
	count atomic.Int64
}

// NewShared returns a handle owning v with a use count of one.
func NewShared[T any](v T) Shared[T] {
	ref := &sharedRef[T]{value: &v}
	ref.count.Store(1)
	return Shared[T]{ref: ref}
}

// Clone returns a new handle to the same value and increments the count.
func (s Shared[T]) Clone() Shared[T] {
	if s.ref != nil {
		s.ref.count.Add(1)
	}
	return s
}

// Release drops this handle's reference and empties it.
func (s *Shared[T]) Release() {
	if s.ref == nil {
		return
	}
	s.ref.count.Add(-1)
	s.ref = nil
}

// Get returns the shared value, or nil for an empty handle.
func (s Shared[T]) Get() *T {
	if s.ref == nil {
		return nil
	}
	return s.ref.value
}

// Address implements [SharedHandle].
func (s Shared[T]) Address() uintptr {
	if s.ref == nil {
		return 0
	}
	return reflect.ValueOf(s.ref.value).Pointer()
}

// UseCount implements [SharedHandle]. It is zero for an empty handle.
func (s Shared[T]) UseCount() int {
	if s.ref == nil {
		return 0
	}
	return int(s.ref.count.Load())
}
