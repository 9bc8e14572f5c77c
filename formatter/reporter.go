package formatter

import (
	"sync"

	"go.uber.org/zap"
)

// ErrorReporter receives failures that prevent an event from being
// formatted. Implementations must not panic and must not log through the
// formatter that reports to them.
type ErrorReporter interface {
	Report(context string, err error)
}

// ReporterFunc adapts a function to the ErrorReporter interface
type ReporterFunc func(context string, err error)

// Report calls f(context, err)
func (f ReporterFunc) Report(context string, err error) {
	f(context, err)
}

// ZapReporter reports formatting failures to a zap logger
type ZapReporter struct {
	logger *zap.Logger
}

// NewZapReporter creates a reporter writing to l. A nil l falls back to
// a production logger on stderr, or a no-op logger if that cannot be built.
func NewZapReporter(l *zap.Logger) *ZapReporter {
	if l == nil {
		var err error
		l, err = zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		}
	}
	return &ZapReporter{logger: l.Named("jsonlog")}
}

// Report implements ErrorReporter
func (r *ZapReporter) Report(context string, err error) {
	defer func() {
		_ = recover()
	}()
	r.logger.Error(context,
		zap.String("code", "FORMAT_FAILURE"),
		zap.Error(err),
	)
}

// Sync flushes the underlying logger
func (r *ZapReporter) Sync() error {
	return r.logger.Sync()
}

var (
	defaultReporterOnce sync.Once
	defaultReporter     *ZapReporter
)

// DefaultReporter returns the process-wide zap reporter used when a
// formatter is configured without one
func DefaultReporter() ErrorReporter {
	defaultReporterOnce.Do(func() {
		defaultReporter = NewZapReporter(nil)
	})
	return defaultReporter
}
