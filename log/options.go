package log

import (
	"github.com/jonboulle/clockwork"
)

// Option configures the trace-to-log adapter.
type Option interface {
	applyHolderOption(h *wrapper)
}

type simpleLoggerOption interface {
	applySimpleOption(l *defaultLogger)
}

type logQueryOption struct{}

func (logQueryOption) applyHolderOption(h *wrapper) {
	h.logQuery = true
}

// WithLogQuery adds SQL text to statement and row updater events.
func WithLogQuery() Option {
	return logQueryOption{}
}

type minLevelOption Level

func (level minLevelOption) applySimpleOption(l *defaultLogger) {
	l.minLevel = Level(level)
}

func WithMinLevel(level Level) simpleLoggerOption {
	return minLevelOption(level)
}

type coloringOption bool

func (coloring coloringOption) applySimpleOption(l *defaultLogger) {
	l.coloring = bool(coloring)
}

func WithColoring() simpleLoggerOption {
	return coloringOption(true)
}

type clockOption struct {
	clock clockwork.Clock
}

func (o clockOption) applySimpleOption(l *defaultLogger) {
	l.clock = o.clock
}

func (o clockOption) applyHolderOption(h *wrapper) {
	h.clock = o.clock
}

// ClockOption is accepted by both Default and Driver.
type ClockOption interface {
	Option
	simpleLoggerOption
}

// WithClock sets the clock of record timestamps and event latencies.
func WithClock(clock clockwork.Clock) ClockOption {
	return clockOption{clock: clock}
}
