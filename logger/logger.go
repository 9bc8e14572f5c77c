package logger

import (
	"time"

	"github.com/philipp01105/jsonlog/core"
	"github.com/philipp01105/jsonlog/handler"
)

// Logger is the main logging interface (immutable)
type Logger struct {
	name          string
	handler       handler.Handler
	level         core.Severity
	catalog       core.Catalog
	includeCaller bool
	callerSkip    int
	coarseClock   bool
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	name          string
	handler       handler.Handler
	level         core.Severity
	catalog       core.Catalog
	includeCaller bool
	callerSkip    int
	coarseClock   bool
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:      core.InfoSeverity, // Default level
		callerSkip: 3,                 // Default skip for GetCaller
	}
}

// WithName sets the logger name carried by every event
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	return b
}

// WithLevel sets the threshold
func (b *Builder) WithLevel(level core.Severity) *Builder {
	b.level = level
	return b
}

// WithCatalog sets the catalog attached to every event, which decides
// whether a message is emitted with a message id
func (b *Builder) WithCatalog(c core.Catalog) *Builder {
	b.catalog = c
	return b
}

// WithCaller enables caller capture. Without it the source class is the
// logger name and the source method is empty.
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithCoarseClock stamps events from the cached coarse clock instead of
// calling time.Now for every event
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	b.coarseClock = enabled
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	if b.coarseClock {
		core.StartCoarseClock()
	}
	return &Logger{
		name:          b.name,
		handler:       b.handler,
		level:         b.level,
		catalog:       b.catalog,
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
		coarseClock:   b.coarseClock,
	}
}

// Named creates a new Logger with a different name (immutable operation)
func (l *Logger) Named(name string) *Logger {
	child := *l
	child.name = name
	return &child
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// Level returns the threshold
func (l *Logger) Level() core.Severity {
	return l.level
}

// IsLoggable reports whether an event at level passes the threshold
func (l *Logger) IsLoggable(level core.Severity) bool {
	return level != core.OffSeverity && l.level.Enabled(level)
}

// IsFinestEnabled reports whether FINEST events are logged
func (l *Logger) IsFinestEnabled() bool {
	return l.IsLoggable(core.FinestSeverity)
}

// IsFineEnabled reports whether FINE events are logged
func (l *Logger) IsFineEnabled() bool {
	return l.IsLoggable(core.FineSeverity)
}

// Log logs a message at the specified level. thrown may be nil; params
// fill the message's positional placeholders.
func (l *Logger) Log(level core.Severity, msg string, thrown error, params ...any) {
	// Level check optimization - exit early BEFORE any allocations
	if !l.IsLoggable(level) {
		return
	}
	l.log(level, msg, thrown, params)
}

// LogEvent forwards a prebuilt event, subject to the same threshold
func (l *Logger) LogEvent(event *core.Event) {
	if event == nil || !l.IsLoggable(event.Level) || l.handler == nil {
		return
	}
	_ = l.handler.Handle(event)
}

// log is the internal logging method; every public method calls it
// directly so the caller is always at callerSkip
func (l *Logger) log(level core.Severity, msg string, thrown error, params []any) {
	// Handler check - exit if no handler (avoid any work)
	if l.handler == nil {
		return
	}

	// Get event from pool AFTER level check
	event := core.GetEvent()
	if l.coarseClock {
		event.TimeMillis = core.CoarseNowMillis()
	} else {
		event.TimeMillis = time.Now().UnixMilli()
	}
	event.Level = level
	event.LoggerName = l.name
	event.ThreadID, event.ThreadName = core.CurrentGoroutine()
	event.Message = msg
	event.Thrown = thrown
	event.Catalog = l.catalog
	if len(params) > 0 {
		event.Parameters = append(event.Parameters, params...)
	}

	event.SourceClassName = l.name
	if l.includeCaller {
		if caller := core.GetCaller(l.callerSkip); caller.Defined {
			event.SourceClassName = caller.ClassName()
			event.SourceMethodName = caller.MethodName()
		}
	}

	// Handlers are synchronous and never retain the event
	_ = l.handler.Handle(event)
	core.PutEvent(event)
}

// Finest logs a FINEST message
func (l *Logger) Finest(msg string, params ...any) {
	if !l.IsLoggable(core.FinestSeverity) {
		return
	}
	l.log(core.FinestSeverity, msg, nil, params)
}

// FinestErr logs a FINEST message with an error
func (l *Logger) FinestErr(msg string, err error) {
	if !l.IsLoggable(core.FinestSeverity) {
		return
	}
	l.log(core.FinestSeverity, msg, err, nil)
}

// Finer logs a FINER message
func (l *Logger) Finer(msg string, params ...any) {
	if !l.IsLoggable(core.FinerSeverity) {
		return
	}
	l.log(core.FinerSeverity, msg, nil, params)
}

// Fine logs a FINE message
func (l *Logger) Fine(msg string, params ...any) {
	if !l.IsLoggable(core.FineSeverity) {
		return
	}
	l.log(core.FineSeverity, msg, nil, params)
}

// Config logs a CONFIG message
func (l *Logger) Config(msg string, params ...any) {
	if !l.IsLoggable(core.ConfigSeverity) {
		return
	}
	l.log(core.ConfigSeverity, msg, nil, params)
}

// Info logs an INFO message
func (l *Logger) Info(msg string, params ...any) {
	if !l.IsLoggable(core.InfoSeverity) {
		return
	}
	l.log(core.InfoSeverity, msg, nil, params)
}

// Warning logs a WARNING message
func (l *Logger) Warning(msg string, params ...any) {
	if !l.IsLoggable(core.WarningSeverity) {
		return
	}
	l.log(core.WarningSeverity, msg, nil, params)
}

// WarningErr logs a WARNING message with an error
func (l *Logger) WarningErr(msg string, err error) {
	if !l.IsLoggable(core.WarningSeverity) {
		return
	}
	l.log(core.WarningSeverity, msg, err, nil)
}

// Severe logs a SEVERE message
func (l *Logger) Severe(msg string, params ...any) {
	if !l.IsLoggable(core.SevereSeverity) {
		return
	}
	l.log(core.SevereSeverity, msg, nil, params)
}

// SevereErr logs a SEVERE message with an error
func (l *Logger) SevereErr(msg string, err error) {
	if !l.IsLoggable(core.SevereSeverity) {
		return
	}
	l.log(core.SevereSeverity, msg, err, nil)
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
