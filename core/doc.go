// Package core defines the shared types used across jsonlog.
//
// It provides the Severity type with its numeric ranks, the Event type
// that represents a single logging call, and a few helpers that capture
// the context of that call: the calling function (GetCaller), the
// calling goroutine (CurrentGoroutine) and errors that remember where
// they were created (WithStack, Errorf).
//
// Event objects may be pooled via GetEvent and PutEvent when a handler
// consumes them synchronously. Severity comparisons always use Rank so
// that thresholds such as AllSeverity and OffSeverity compare correctly
// against the seven event severities.
package core
