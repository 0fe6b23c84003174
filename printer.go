package repr

import (
	"io"
	"reflect"
	"strings"

	"go.uber.org/zap"
)

// Printer renders values to a sink. Rendering emits one write per literal,
// separator, or leaf value, in output order.
//
// The first write error is kept: later writes are skipped and every
// subsequent call returns the same error. Chunks written before the failure
// stay in the sink. A Printer is not safe for concurrent use.
type Printer struct {
	w   io.Writer
	cfg config
	err error
}

// flusher is implemented by buffered sinks such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// New returns a Printer that writes to w.
func New(w io.Writer, opts ...PrinterOption) *Printer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Printer{w: w, cfg: cfg}
}

// Print renders each value at depth zero and flushes the sink when it
// supports flushing.
func (p *Printer) Print(values ...any) error {
	for _, v := range values {
		p.render(reflect.ValueOf(v), 0)
	}
	return p.finish()
}

// Println is like Print followed by a newline.
func (p *Printer) Println(values ...any) error {
	for _, v := range values {
		p.render(reflect.ValueOf(v), 0)
	}
	p.write("\n")
	return p.finish()
}

// PrintType writes the display name of t.
func (p *Printer) PrintType(t reflect.Type) error {
	p.write(typeName(t, p.cfg.qualified))
	return p.finish()
}

// Sprint renders values with p's options into a string. The printer's own
// sink and error state are not touched.
func (p *Printer) Sprint(values ...any) string {
	var b strings.Builder
	c := &Printer{w: &b, cfg: p.cfg}
	for _, v := range values {
		c.render(reflect.ValueOf(v), 0)
	}
	return b.String()
}

// Err returns the first write error, if any.
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) sprintValue(v reflect.Value) string {
	var b strings.Builder
	c := &Printer{w: &b, cfg: p.cfg}
	c.render(v, 0)
	return b.String()
}

func (p *Printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *Printer) finish() error {
	if p.err != nil {
		return p.err
	}
	if f, ok := p.w.(flusher); ok {
		p.err = f.Flush()
	}
	return p.err
}

// category classifies t, logging types the process has not seen before.
func (p *Printer) category(t reflect.Type) Category {
	c, fresh := lookupCategory(t)
	if fresh {
		p.cfg.logger.Debug("classified type",
			zap.String("type", typeName(t, true)),
			zap.Stringer("category", c),
		)
	}
	return c
}
