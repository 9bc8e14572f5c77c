// Package handler provides the Handler interface that receives formatted
// log events, and the handlers shared by every destination.
//
// Handlers are synchronous: Handle returns once the event is written, so
// callers may recycle the event afterwards. An event that formats to an
// empty line (the formatter reports its own failures and returns "") is
// not written and is counted as suppressed in the handler's Stats.
//
// Built-in handlers:
//
//   - consolehandler writes formatted lines to any io.Writer (default: stdout).
//   - filehandler writes to a file rotated by size, age and backup count.
//   - MultiHandler fans out a single event to multiple child handlers and
//     combines their errors.
//   - SlogHandler adapts a Handler to log/slog.Handler, so code written
//     against the standard library logs through this backend.
package handler
