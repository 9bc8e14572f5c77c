package formatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/philipp01105/jsonlog/core"
)

// Output keys
const (
	TimestampKey  = "_Timestamp"
	TimeMillisKey = "_TimeMillis"
	LevelKey      = "_Level"
	LevelValueKey = "_LevelValue"
	ProductIDKey  = "_Version"
	LoggerNameKey = "_LoggerName"
	ThreadIDKey   = "_ThreadID"
	ThreadNameKey = "_ThreadName"
	MessageIDKey  = "_MessageID"
	ClassNameKey  = "ClassName"
	MethodNameKey = "MethodName"
	RecordKey     = "RecordNumber"
	LogMessageKey = "_LogMessage"
	ExceptionKey  = "_Exception"
	StackTraceKey = "_StackTrace"
)

const failureContext = "Error in formatting log event"

var errNilEvent = errors.New("nil event")

// compiledPattern pairs a pattern source with its compilation result so
// both can be swapped atomically
type compiledPattern struct {
	pattern *Pattern
	err     error
}

// JSONFormatter renders events as single-line JSON objects. It is safe
// for concurrent use; its only mutable state is the catalog cache and the
// record sequence.
type JSONFormatter struct {
	cfg      Config
	pattern  atomic.Pointer[compiledPattern]
	resolver *Resolver
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg Config) *JSONFormatter {
	applyDefaults(&cfg)
	f := &JSONFormatter{
		cfg:      cfg,
		resolver: NewResolver(cfg.Registry, cfg.Language),
	}
	f.SetTimestampPattern(cfg.TimestampPattern)
	return f
}

// SetTimestampPattern replaces the timestamp pattern. An empty pattern
// restores the default. An invalid pattern is kept and makes every
// subsequent Format call fail; the error is also returned here.
func (f *JSONFormatter) SetTimestampPattern(src string) error {
	if src == "" {
		src = DefaultTimestampPattern
	}
	p, err := CompilePattern(src)
	f.pattern.Store(&compiledPattern{pattern: p, err: err})
	return err
}

// TimestampPattern returns the active timestamp pattern
func (f *JSONFormatter) TimestampPattern() string {
	cp := f.pattern.Load()
	if cp.pattern == nil {
		return ""
	}
	return cp.pattern.String()
}

// Config returns the effective configuration
func (f *JSONFormatter) Config() Config {
	return f.cfg
}

// Format renders event as one JSON line terminated by LineSeparator.
// On failure the error is reported and the empty string returned.
func (f *JSONFormatter) Format(event *core.Event) string {
	buf := getBuffer()
	defer putBuffer(buf)

	if !f.FormatEvent(event, buf) {
		return ""
	}
	return buf.String()
}

// FormatEvent formats an event into the given buffer (implements BufferFormatter).
func (f *JSONFormatter) FormatEvent(event *core.Event, buf *bytes.Buffer) (ok bool) {
	start := buf.Len()
	defer func() {
		if r := recover(); r != nil {
			buf.Truncate(start)
			f.cfg.Reporter.Report(failureContext, fmt.Errorf("panic: %v", r))
			ok = false
		}
	}()

	if err := f.formatJSONToBuffer(event, buf); err != nil {
		buf.Truncate(start)
		f.cfg.Reporter.Report(failureContext, err)
		return false
	}
	return true
}

// formatJSONToBuffer builds the JSON object manually into the buffer
func (f *JSONFormatter) formatJSONToBuffer(event *core.Event, buf *bytes.Buffer) error {
	if event == nil {
		return errNilEvent
	}
	cp := f.pattern.Load()
	if cp.err != nil {
		return cp.err
	}

	buf.WriteByte('{')

	// Timestamp, human readable and raw
	var scratch [64]byte
	ts := cp.pattern.Append(scratch[:0], time.UnixMilli(event.TimeMillis).In(f.cfg.Location))
	appendStringField(buf, true, TimestampKey, string(ts))
	appendIntField(buf, TimeMillisKey, event.TimeMillis)

	// Level name and rank
	appendStringField(buf, false, LevelKey, event.Level.String())
	appendIntField(buf, LevelValueKey, int64(event.Level.Rank()))

	appendStringField(buf, false, ProductIDKey, f.cfg.ProductID)
	appendStringField(buf, false, LoggerNameKey, event.LoggerName)

	// Thread id comes from the event, the name from the formatting goroutine
	appendIntField(buf, ThreadIDKey, event.ThreadID)
	_, threadName := core.CurrentGoroutine()
	appendStringField(buf, false, ThreadNameKey, threadName)

	if id, ok := MessageID(event); ok {
		appendStringField(buf, false, MessageIDKey, id)
	}

	if f.cfg.IncludeSourceLocation || event.Level.Rank() <= core.FineSeverity.Rank() {
		if event.SourceClassName != "" {
			appendStringField(buf, false, ClassNameKey, event.SourceClassName)
		}
		if event.SourceMethodName != "" {
			appendStringField(buf, false, MethodNameKey, event.SourceMethodName)
		}
	}

	if f.cfg.IncludeRecordSequence {
		appendIntField(buf, RecordKey, int64(f.cfg.Sequence.Next()))
	}

	f.appendMessage(buf, event)

	buf.WriteByte('}')
	buf.WriteString(LineSeparator)
	return nil
}

// appendMessage writes the _LogMessage field: a plain string, an
// exception object, or nothing for a blank message without an error.
func (f *JSONFormatter) appendMessage(buf *bytes.Buffer, event *core.Event) {
	if strings.TrimSpace(event.Message) == "" {
		if event.Thrown != nil {
			appendExceptionField(buf, event.Thrown.Error(), RenderStackTrace(event.Thrown))
		}
		return
	}

	text := f.resolver.Resolve(event.LoggerName, event.Message, event.Parameters)
	if event.Thrown != nil {
		appendExceptionField(buf, text, RenderStackTrace(event.Thrown))
		return
	}
	appendStringField(buf, false, LogMessageKey, text)
}

func appendExceptionField(buf *bytes.Buffer, exception, stackTrace string) {
	buf.WriteString(`,"`)
	buf.WriteString(LogMessageKey)
	buf.WriteString(`":{`)
	appendStringField(buf, true, ExceptionKey, exception)
	appendStringField(buf, false, StackTraceKey, stackTrace)
	buf.WriteByte('}')
}

// ResolveMessage returns the display text of a raw message, see Resolver.Resolve
func (f *JSONFormatter) ResolveMessage(loggerName, msg string, params []any) string {
	return f.resolver.Resolve(loggerName, msg, params)
}

// Resolver returns the message resolver of the formatter
func (f *JSONFormatter) Resolver() *Resolver {
	return f.resolver
}
