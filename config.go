package repr

import (
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultMaxDepth bounds nesting. Values nested deeper render as "...",
	// which keeps self-referencing []any and map[string]any graphs finite.
	DefaultMaxDepth = 64
	// DefaultMaxTextWidth of zero leaves text untruncated.
	DefaultMaxTextWidth = 0
)

type config struct {
	maxDepth     int
	maxTextWidth int
	loc          *time.Location
	qualified    bool
	logger       *zap.Logger
}

func defaultConfig() config {
	return config{
		maxDepth:     DefaultMaxDepth,
		maxTextWidth: DefaultMaxTextWidth,
		loc:          time.Local,
		logger:       zap.NewNop(),
	}
}

// PrinterOption configures a [Printer].
type PrinterOption func(*config)

// WithMaxDepth sets the nesting limit.
// A non-positive value resets to DefaultMaxDepth.
func WithMaxDepth(n int) PrinterOption {
	return func(c *config) {
		if n <= 0 {
			c.maxDepth = DefaultMaxDepth
			return
		}
		c.maxDepth = n
	}
}

// WithMaxTextWidth truncates text and path values wider than n display
// columns, ending them with "...". Zero or less disables truncation.
func WithMaxTextWidth(n int) PrinterOption {
	return func(c *config) {
		c.maxTextWidth = max(n, 0)
	}
}

// WithLocation sets the time zone used for wall clock timestamps.
// Default: time.Local.
func WithLocation(loc *time.Location) PrinterOption {
	return func(c *config) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithQualifiedNames renders type names with their package qualifier,
// e.g. "geo.Point" instead of "Point".
func WithQualifiedNames(qualified bool) PrinterOption {
	return func(c *config) {
		c.qualified = qualified
	}
}

// WithLogger sets the logger used for debug output. A type is logged the
// first time the process classifies it.
// Default: a no-op logger.
func WithLogger(l *zap.Logger) PrinterOption {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
