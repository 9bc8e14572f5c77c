package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/philipp01105/jsonlog/core"
)

// SlogHandler is an adapter that implements slog.Handler on top of a Handler.
// Attribute values become the positional parameters of the message, in
// order, so "Order {0} failed" logged with slog.String("id", "42") prints
// "Order 42 failed". The first error-valued attribute becomes the
// event's error instead.
type SlogHandler struct {
	handler Handler
	level   core.Severity
	name    string
	attrs   []slog.Attr
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given
// Handler. Events carry name as their logger name.
func NewSlogHandler(h Handler, name string, level core.Severity) *SlogHandler {
	return &SlogHandler{
		handler: h,
		level:   level,
		name:    name,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.level.Enabled(slogLevelToSeverity(level))
}

// Handle converts a slog.Record to a core.Event and passes it to the wrapped handler.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	event := core.GetEvent()
	defer core.PutEvent(event)

	if !record.Time.IsZero() {
		event.TimeMillis = record.Time.UnixMilli()
	}
	event.Level = slogLevelToSeverity(record.Level)
	event.LoggerName = s.name
	event.ThreadID, event.ThreadName = core.CurrentGoroutine()
	event.Message = record.Message

	event.SourceClassName = s.name
	if caller := core.CallerFromPC(record.PC); caller.Defined {
		event.SourceClassName = caller.ClassName()
		event.SourceMethodName = caller.MethodName()
	}

	for _, a := range s.attrs {
		s.addAttr(event, a)
	}
	record.Attrs(func(a slog.Attr) bool {
		s.addAttr(event, a)
		return true
	})

	return s.handler.Handle(event)
}

func (s *SlogHandler) addAttr(event *core.Event, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			s.addAttr(event, ga)
		}
		return
	}
	if err, ok := a.Value.Any().(error); ok && event.Thrown == nil {
		event.Thrown = err
		return
	}
	event.Parameters = append(event.Parameters, slogValue(a.Value))
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	newAttrs = append(newAttrs, attrs...)
	return &SlogHandler{
		handler: s.handler,
		level:   s.level,
		name:    s.name,
		attrs:   newAttrs,
	}
}

// WithGroup returns a new SlogHandler whose logger name is extended by
// name, so slog.New(h).WithGroup("db") logs as "<name>.db".
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	loggerName := name
	if s.name != "" {
		loggerName = s.name + "." + name
	}
	newAttrs := make([]slog.Attr, len(s.attrs))
	copy(newAttrs, s.attrs)
	return &SlogHandler{
		handler: s.handler,
		level:   s.level,
		name:    loggerName,
		attrs:   newAttrs,
	}
}

// slogLevelToSeverity converts a slog.Level to a core.Severity.
func slogLevelToSeverity(level slog.Level) core.Severity {
	switch {
	case level >= slog.LevelError:
		return core.SevereSeverity
	case level >= slog.LevelWarn:
		return core.WarningSeverity
	case level >= slog.LevelInfo:
		return core.InfoSeverity
	case level >= slog.LevelDebug:
		return core.FineSeverity
	case level >= slog.LevelDebug-4:
		return core.FinerSeverity
	default:
		return core.FinestSeverity
	}
}

func slogValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	default:
		return v.Any()
	}
}
