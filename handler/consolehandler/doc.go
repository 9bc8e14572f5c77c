// Package consolehandler provides a console handler that writes formatted
// log events to any io.Writer (default: os.Stdout), one line per event.
//
// The handler is synchronous: Handle returns once the line is written.
// Uncontended calls format into a handler-owned buffer under TryLock;
// contended calls format into pooled buffers outside the lock so only the
// write itself is serialized.
package consolehandler
