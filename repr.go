package repr

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"time"
)

// Sentinel errors for programmatic error handling.
var (
	ErrNotAggregate    = errors.New("not a plain aggregate")
	ErrUnknownCategory = errors.New("unknown category")
)

// Category is the rendering strategy assigned to a type.
// Categories are listed in the order the classifier tests them.
type Category int

const (
	Handle     Category = iota // pointers and shared handles
	Text                       // strings
	Numeric                    // bools, integers, floats
	Method                     // Reprer, fmt.Stringer, error
	Conversion                 // encoding.TextMarshaler
	Map                        // maps and iter.Seq2 containers
	Path                       // Pather
	Sequence                   // slices, arrays and iter.Seq containers
	PairLike                   // Pair
	TupleLike                  // Tuple
	Optional                   // Option and sql null wrappers
	Complex                    // complex64, complex128
	Time                       // time.Time and Instant
	Aggregate                  // structs with only exported fields
	Opaque                     // everything else

	numCategories
)

var categoryNames = [numCategories]string{
	Handle:     "handle",
	Text:       "text",
	Numeric:    "numeric",
	Method:     "method",
	Conversion: "conversion",
	Map:        "map",
	Path:       "path",
	Sequence:   "sequence",
	PairLike:   "pair",
	TupleLike:  "tuple",
	Optional:   "optional",
	Complex:    "complex",
	Time:       "time",
	Aggregate:  "aggregate",
	Opaque:     "opaque",
}

// String returns the category name.
func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Categories returns all categories in classification order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// ParseCategory parses a category name as returned by [Category.String].
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// --- Capability Interfaces ---

// Reprer is the explicit escape hatch. Its result is written verbatim and
// takes precedence over fmt.Stringer and error.
type Reprer interface {
	Repr() string
}

// SharedHandle is implemented by reference-counted handles.
// A zero Address means the handle is empty.
type SharedHandle interface {
	Address() uintptr
	UseCount() int
}

// Pather is implemented by path values. A Pather renders as a single string
// even when it is also iterable over its components.
type Pather interface {
	Path() string
}

// Instant is a point on a clock other than the wall clock.
type Instant interface {
	SinceEpoch() time.Duration
}

// --- Entry Points ---

// Fprint renders values to w. Each value is rendered independently at depth
// zero and the results are concatenated without separators.
func Fprint(w io.Writer, values ...any) error {
	return New(w).Print(values...)
}

// Fprintln is like [Fprint] but writes a trailing newline.
func Fprintln(w io.Writer, values ...any) error {
	return New(w).Println(values...)
}

// Print renders values to standard output.
func Print(values ...any) error {
	return Fprint(os.Stdout, values...)
}

// Println renders values to standard output followed by a newline.
func Println(values ...any) error {
	return Fprintln(os.Stdout, values...)
}

// Sprint renders values and returns the text.
func Sprint(values ...any) string {
	return New(io.Discard).Sprint(values...)
}

// Sprintln is like [Sprint] with a trailing newline.
func Sprintln(values ...any) string {
	return Sprint(values...) + "\n"
}

// Render renders v classified by its static type T rather than the dynamic
// type stored in an interface. Render[error](err) uses err.Error(), whereas
// Sprint(err) sees only the concrete pointer behind the interface.
func Render[T any](v T) string {
	return New(io.Discard).sprintValue(reflect.ValueOf(&v).Elem())
}

// TypeName returns the display name of T, as used in aggregate headers.
func TypeName[T any]() string {
	return typeName(reflect.TypeFor[T](), false)
}

// TypeNameOf returns the display name of v's dynamic type.
func TypeNameOf(v any) string {
	return typeName(reflect.TypeOf(v), false)
}

// Dbg renders v prefixed by label, as in "label: value".
func Dbg(label string, v any) string {
	return Sprint(label, ": ", v)
}
