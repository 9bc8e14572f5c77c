package core

import (
	"fmt"
	"runtime"
)

// StackTracer is implemented by errors that carry the program counters
// of the place they were created.
type StackTracer interface {
	StackTrace() []uintptr
}

type stackError struct {
	err error
	pcs []uintptr
}

func (e *stackError) Error() string         { return e.err.Error() }
func (e *stackError) Unwrap() error         { return e.err }
func (e *stackError) StackTrace() []uintptr { return e.pcs }

// WithStack annotates err with the stack of the caller. It returns nil
// when err is nil and err itself when it already carries a stack.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(StackTracer); ok {
		return err
	}
	return &stackError{err: err, pcs: callers(3)}
}

// Errorf formats an error like fmt.Errorf and records the caller's stack
func Errorf(format string, args ...any) error {
	return &stackError{err: fmt.Errorf(format, args...), pcs: callers(3)}
}

func callers(skip int) []uintptr {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	return pcs[:n]
}
