package repr

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/mattn/go-runewidth"
)

const (
	nullToken    = "nullptr"
	noneToken    = "None"
	elidedToken  = "..."
	timeLayout   = "2006-01-02 15:04:05"
	epochSuffix  = "ns since epoch"
	truncateTail = "..."
)

type handler func(p *Printer, v reflect.Value, depth int)

// handlers has one entry per category. It is filled in init because the
// handlers recurse through render, which reads the table.
var handlers [numCategories]handler

func init() {
	handlers = [numCategories]handler{
		Handle:     (*Printer).renderHandle,
		Text:       (*Printer).renderText,
		Numeric:    (*Printer).renderNumeric,
		Method:     (*Printer).renderMethod,
		Conversion: (*Printer).renderConversion,
		Map:        (*Printer).renderMap,
		Path:       (*Printer).renderPath,
		Sequence:   (*Printer).renderSequence,
		PairLike:   (*Printer).renderPair,
		TupleLike:  (*Printer).renderTuple,
		Optional:   (*Printer).renderOptional,
		Complex:    (*Printer).renderComplex,
		Time:       (*Printer).renderTime,
		Aggregate:  (*Printer).renderAggregate,
		Opaque:     (*Printer).renderOpaque,
	}
}

func (p *Printer) render(v reflect.Value, depth int) {
	if p.err != nil {
		return
	}
	if !v.IsValid() {
		p.write(nullToken)
		return
	}
	if depth > p.cfg.maxDepth {
		p.write(elidedToken)
		return
	}
	c := p.category(v.Type())
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			p.write(nullToken)
			return
		}
		if e := v.Elem(); e.Kind() == reflect.Pointer && e.IsNil() {
			p.write(nullToken)
			return
		}
		// An interface whose own method set picks no category is transparent.
		if c == Opaque {
			p.render(v.Elem(), depth)
			return
		}
	}
	handlers[c](p, v, depth)
}

func (p *Printer) renderHandle(v reflect.Value, depth int) {
	if k := v.Kind(); k == reflect.Pointer || k == reflect.UnsafePointer {
		if v.IsNil() {
			p.write(nullToken)
			return
		}
		p.write("{ address: ")
		p.write(hex(v.Pointer()))
		p.write(" }")
		return
	}
	h := receiver(v).(SharedHandle)
	addr, ok := call(h.Address)
	if !ok {
		p.renderOpaque(v, depth)
		return
	}
	if addr == 0 {
		p.write(nullToken)
		return
	}
	count, ok := call(h.UseCount)
	if !ok {
		p.renderOpaque(v, depth)
		return
	}
	p.write("{ address: ")
	p.write(hex(addr))
	p.write(", count: ")
	p.write(strconv.Itoa(count))
	p.write(" }")
}

func (p *Printer) renderText(v reflect.Value, depth int) {
	p.writeText(v.String(), depth)
}

func (p *Printer) renderPath(v reflect.Value, depth int) {
	s, ok := call(receiver(v).(Pather).Path)
	if !ok {
		p.renderOpaque(v, depth)
		return
	}
	p.writeText(s, depth)
}

// writeText quotes nested text. Embedded quotes are not escaped.
func (p *Printer) writeText(s string, depth int) {
	if n := p.cfg.maxTextWidth; n > 0 && runewidth.StringWidth(s) > n {
		s = runewidth.Truncate(s, n, truncateTail)
	}
	if depth == 0 {
		p.write(s)
		return
	}
	p.write(`"`)
	p.write(s)
	p.write(`"`)
}

func (p *Printer) renderNumeric(v reflect.Value, _ int) {
	switch v.Kind() {
	case reflect.Bool:
		p.write(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		p.write(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		p.write(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32:
		p.write(strconv.FormatFloat(v.Float(), 'g', -1, 32))
	case reflect.Float64:
		p.write(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	}
}

func (p *Printer) renderMethod(v reflect.Value, depth int) {
	s, ok := convert(v, func(x any) string {
		switch x := x.(type) {
		case Reprer:
			return x.Repr()
		case fmt.Stringer:
			return x.String()
		default:
			return x.(error).Error()
		}
	})
	if !ok {
		p.renderOpaque(v, depth)
		return
	}
	p.write(s)
}

func (p *Printer) renderConversion(v reflect.Value, depth int) {
	var failed bool
	s, ok := convert(v, func(x any) string {
		b, err := x.(encoding.TextMarshaler).MarshalText()
		failed = err != nil
		return string(b)
	})
	if !ok || failed {
		p.renderOpaque(v, depth)
		return
	}
	p.write(s)
}

// convert runs a user conversion method on v.
func convert(v reflect.Value, fn func(any) string) (string, bool) {
	return call(func() string { return fn(receiver(v)) })
}

// call runs user code. It reports false when fn panics; callers then fall
// back to the opaque form.
func call[T any](fn func() T) (out T, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return fn(), true
}

func (p *Printer) renderMap(v reflect.Value, depth int) {
	src, ok := iterable(v, reflect.Map)
	if !ok {
		p.renderOpaque(v, depth)
		return
	}
	p.write("{ ")
	first := true
	complete := entries(src, func(k, e reflect.Value) bool {
		if !first {
			p.write(", ")
		}
		first = false
		p.render(k, depth+1)
		p.write(": ")
		p.render(e, depth+1)
		return p.err == nil
	})
	if !complete {
		p.writeElided(first)
	}
	p.write(" }")
}

func (p *Printer) renderSequence(v reflect.Value, depth int) {
	src, ok := iterable(v, reflect.Slice, reflect.Array)
	if !ok {
		p.renderOpaque(v, depth)
		return
	}
	p.write("[")
	first := true
	complete := elements(src, func(e reflect.Value) bool {
		if !first {
			p.write(", ")
		}
		first = false
		p.render(e, depth+1)
		return p.err == nil
	})
	if !complete {
		p.writeElided(first)
	}
	p.write("]")
}

// writeElided marks an iterator that panicked part way through.
func (p *Printer) writeElided(first bool) {
	if !first {
		p.write(", ")
	}
	p.write(elidedToken)
}

func (p *Printer) renderPair(v reflect.Value, depth int) {
	p.write("(")
	p.render(v.Field(0), depth+1)
	p.write(", ")
	p.render(v.Field(1), depth+1)
	p.write(")")
}

func (p *Printer) renderTuple(v reflect.Value, depth int) {
	p.write("(")
	for i, e := range receiver(v).(tupler).values() {
		if i > 0 {
			p.write(", ")
		}
		p.render(reflect.ValueOf(e), depth+1)
	}
	p.write(")")
}

// renderOptional keeps the depth of the wrapper so that the inner value is
// quoted and braced exactly as it would be on its own.
func (p *Printer) renderOptional(v reflect.Value, depth int) {
	if !v.FieldByName("Valid").Bool() {
		p.write(noneToken)
		return
	}
	p.render(v.Field(0), depth)
}

func (p *Printer) renderComplex(v reflect.Value, depth int) {
	c := v.Complex()
	if v.Kind() == reflect.Complex64 {
		p.render(reflect.ValueOf(Pair[float32, float32]{float32(real(c)), float32(imag(c))}), depth+1)
		return
	}
	p.render(reflect.ValueOf(Pair[float64, float64]{real(c), imag(c)}), depth+1)
}

func (p *Printer) renderTime(v reflect.Value, depth int) {
	if v.Type() == timeType {
		p.write(v.Interface().(time.Time).In(p.cfg.loc).Format(timeLayout))
		return
	}
	d, ok := call(receiver(v).(Instant).SinceEpoch)
	if !ok {
		p.renderOpaque(v, depth)
		return
	}
	p.write(strconv.FormatInt(d.Nanoseconds(), 10))
	p.write(epochSuffix)
}

// renderAggregate names the type only at the top level; nested aggregates
// show their fields alone.
func (p *Printer) renderAggregate(v reflect.Value, depth int) {
	if depth == 0 {
		p.write(typeName(v.Type(), p.cfg.qualified))
		p.write(" ")
	}
	p.write("{ ")
	for i, f := range decompose(v) {
		if i > 0 {
			p.write(", ")
		}
		p.write(f.Name)
		p.write(": ")
		p.render(f.Value, depth+1)
	}
	p.write(" }")
}

func (p *Printer) renderOpaque(v reflect.Value, _ int) {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	p.write("<")
	p.write(typeName(v.Type(), p.cfg.qualified))
	p.write(" at ")
	p.write(identity(v))
	p.write(">")
}
