// Package repr renders arbitrary Go values as readable text for debugging.
//
// Values need no annotations and no printing interface. The output is meant
// for people: it is deterministic, but it is not a wire format and cannot be
// parsed back. The central entry points are [Fprint], [Sprint], and [New],
// which accept variadic values of any type:
//
//	repr.Println(MakePair(1, 3.4))      // (1, 3.4)
//	repr.Println([]int{1, 2, 3, 4})     // [1, 2, 3, 4]
//	repr.Println(Point{X: 10, Y: 20})   // Point { X: 10, Y: 20 }
//
// # Categories
//
// Every type is assigned exactly one [Category]. Candidates are tested in
// this order and the first match wins:
//
//  1. [Handle]: pointers and [SharedHandle] types as nullptr, { address: 0x.. },
//     or { address: 0x.., count: N }
//  2. [Text]: strings; quoted when nested
//  3. [Numeric]: bools, integers, floats
//  4. [Method]: [Reprer], [fmt.Stringer], or error; written verbatim
//  5. [Conversion]: [encoding.TextMarshaler]; written verbatim
//  6. [Map]: maps and iter.Seq2 containers as { k: v, k: v }
//  7. [Path]: [Pather]; rendered like text even when iterable
//  8. [Sequence]: slices, arrays, iter.Seq containers as [a, b]
//  9. [PairLike]: [Pair] as (a, b)
//  10. [TupleLike]: [Tuple] as (a, b, c)
//  11. [Optional]: [Option] and database/sql null wrappers as None or the value
//  12. [Complex]: complex numbers as (real, imag)
//  13. [Time]: time.Time as "2006-01-02 15:04:05"; [Instant] as "Nns since epoch"
//  14. [Aggregate]: structs whose fields are all exported
//  15. [Opaque]: everything else as <TypeName at 0x..>
//
// Opaque always matches, so every value renders to something. Use
// [ClassifyType] to see which category a type falls into.
//
// Classification looks at the static type. A value stored in an interface
// whose own method set selects a category (a field declared as error, for
// example) renders through that interface; any other interface is looked
// through to the value inside. [Render] applies the same rule at the top
// level for its type argument.
//
// # Depth
//
// Top-level values are at depth zero and every element, field, key, or
// component is one level deeper. Depth decides two things: text is quoted
// only when nested, and aggregates are prefixed with their type name only at
// the top. An [Option] is transparent and renders its value at its own depth.
//
// # Aggregates
//
// Structs whose fields are all exported are decomposed by reflection into
// [Field] values in declaration order. [FieldCount], [FieldNames], and
// [Fields] expose the decomposition directly.
//
// # Maps
//
// Built-in maps have no iteration order, so their keys are sorted the way
// package fmt sorts them. Containers exposing All() iter.Seq2[K, V] keep
// their own order, duplicate keys included.
//
// # Sinks
//
// A [Printer] writes each literal, separator, and leaf to an [io.Writer] as a
// separate chunk and flushes the writer once per call when it has a
// Flush() error method. The first write error stops rendering and is
// returned unchanged; nothing is retried.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrNotAggregate]: decomposition of a type that is not an aggregate
//   - [ErrUnknownCategory]: unknown category name
package repr
