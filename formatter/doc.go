// Package formatter turns log events into output lines.
//
// JSONFormatter is the main formatter. Every call produces one JSON
// object on a single line followed by LineSeparator. Fields are written
// in a fixed order:
//
//	_Timestamp, _TimeMillis, _Level, _LevelValue, _Version, _LoggerName,
//	_ThreadID, _ThreadName, _MessageID, ClassName, MethodName,
//	RecordNumber, _LogMessage
//
// All values are strings; _LogMessage is either a string or an object
// with _Exception and _StackTrace. ClassName and MethodName only appear
// for events at FINE or below unless Config.IncludeSourceLocation is set.
// _MessageID only appears when the raw message is a key in the event's
// catalog, and RecordNumber only with Config.IncludeRecordSequence.
//
// Format never panics. When an event cannot be rendered, for example
// because the timestamp pattern is invalid, the failure goes to the
// configured ErrorReporter and Format returns the empty string, so a
// broken event never leaves a partial line in the output.
//
// Both formatters build output with a pooled bytes.Buffer and implement
// BufferFormatter, which handlers prefer because it avoids the
// intermediate string. Buffers larger than 64 KiB are not returned to
// the pool.
package formatter
