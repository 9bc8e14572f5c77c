package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/philipp01105/jsonlog/core"
)

// TextFormatter formats events as human-readable lines:
//
//	2026-01-15T12:00:00.000+0000 [INFO] svc.A: Service started
//
// Errors are appended as an indented stack trace. Message resolution is
// the same as for JSONFormatter.
type TextFormatter struct {
	cfg      Config
	pattern  *Pattern
	resolver *Resolver
}

// NewTextFormatter creates a new text formatter. It returns an error for
// an invalid timestamp pattern.
func NewTextFormatter(cfg Config) (*TextFormatter, error) {
	applyDefaults(&cfg)
	p, err := CompilePattern(cfg.TimestampPattern)
	if err != nil {
		return nil, err
	}
	return &TextFormatter{
		cfg:      cfg,
		pattern:  p,
		resolver: NewResolver(cfg.Registry, cfg.Language),
	}, nil
}

// pre-formatted level strings to avoid multiple WriteString calls
var levelBrackets = map[core.Severity]string{
	core.FinestSeverity:  " [FINEST] ",
	core.FinerSeverity:   " [FINER] ",
	core.FineSeverity:    " [FINE] ",
	core.ConfigSeverity:  " [CONFIG] ",
	core.InfoSeverity:    " [INFO] ",
	core.WarningSeverity: " [WARNING] ",
	core.SevereSeverity:  " [SEVERE] ",
}

// Format formats an event as text
func (f *TextFormatter) Format(event *core.Event) string {
	buf := getBuffer()
	defer putBuffer(buf)

	if !f.FormatEvent(event, buf) {
		return ""
	}
	return buf.String()
}

// FormatEvent formats an event as text into the given buffer (implements BufferFormatter).
func (f *TextFormatter) FormatEvent(event *core.Event, buf *bytes.Buffer) (ok bool) {
	start := buf.Len()
	defer func() {
		if r := recover(); r != nil {
			buf.Truncate(start)
			f.cfg.Reporter.Report(failureContext, fmt.Errorf("panic: %v", r))
			ok = false
		}
	}()
	if event == nil {
		f.cfg.Reporter.Report(failureContext, errNilEvent)
		return false
	}
	f.formatToBuffer(event, buf)
	return true
}

// formatToBuffer writes the formatted event into the given buffer
func (f *TextFormatter) formatToBuffer(event *core.Event, buf *bytes.Buffer) {
	buf.Write(f.pattern.Append(buf.AvailableBuffer(), time.UnixMilli(event.TimeMillis).In(f.cfg.Location)))

	if s, ok := levelBrackets[event.Level]; ok {
		buf.WriteString(s)
	} else {
		buf.WriteString(" [")
		buf.WriteString(event.Level.String())
		buf.WriteString("] ")
	}

	if event.LoggerName != "" {
		buf.WriteString(event.LoggerName)
		buf.WriteString(": ")
	}

	if f.cfg.IncludeSourceLocation || event.Level.Rank() <= core.FineSeverity.Rank() {
		if event.SourceClassName != "" || event.SourceMethodName != "" {
			buf.WriteByte('[')
			buf.WriteString(event.SourceClassName)
			if event.SourceMethodName != "" {
				buf.WriteByte('.')
				buf.WriteString(event.SourceMethodName)
			}
			buf.WriteString("] ")
		}
	}

	if f.cfg.IncludeRecordSequence {
		fmt.Fprintf(buf, "#%d ", f.cfg.Sequence.Next())
	}

	msg := event.Message
	if strings.TrimSpace(msg) != "" {
		buf.WriteString(f.resolver.Resolve(event.LoggerName, msg, event.Parameters))
	} else if event.Thrown != nil {
		buf.WriteString(event.Thrown.Error())
	}
	buf.WriteString(LineSeparator)

	if event.Thrown != nil {
		for _, line := range strings.SplitAfter(RenderStackTrace(event.Thrown), LineSeparator) {
			if line == "" {
				continue
			}
			buf.WriteString("    ")
			buf.WriteString(line)
		}
	}
}
