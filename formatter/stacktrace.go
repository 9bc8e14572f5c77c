package formatter

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/philipp01105/jsonlog/core"
)

// maxCauseDepth bounds the rendered error chain
const maxCauseDepth = 32

// RenderStackTrace renders err, its recorded stack and its causes.
//
// The first line is "<type>: <message>". Frames recorded with
// core.WithStack or core.Errorf follow as "\tat <function>(<file>:<line>)".
// Each wrapped error is rendered as "Caused by: <type>: <message>", and
// errors joined with errors.Join are rendered as "Suppressed:" blocks.
func RenderStackTrace(err error) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	writeTrace(&b, err, "", 0)
	return b.String()
}

// ErrorClass returns the dynamic type name used in stack traces
func ErrorClass(err error) string {
	display, _ := unwrapStack(err)
	return fmt.Sprintf("%T", display)
}

func writeTrace(b *strings.Builder, err error, indent string, depth int) {
	first := true
	for cur := err; cur != nil && depth < maxCauseDepth; depth++ {
		display, pcs := unwrapStack(cur)

		// the caller writes the prefix of the first line
		if !first {
			b.WriteString(indent)
			b.WriteString("Caused by: ")
		}
		first = false
		fmt.Fprintf(b, "%T: %s", display, display.Error())
		b.WriteString(LineSeparator)
		writeFrames(b, indent, pcs)

		if joined, ok := display.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				if e == nil {
					continue
				}
				b.WriteString(indent)
				b.WriteString("\tSuppressed: ")
				writeTrace(b, e, indent+"\t", depth+1)
			}
			return
		}
		cur = errors.Unwrap(display)
	}
}

// unwrapStack strips a stack-carrying wrapper that adds nothing to the
// message, so the trace names the error that was actually created.
func unwrapStack(err error) (error, []uintptr) {
	st, ok := err.(core.StackTracer)
	if !ok {
		return err, nil
	}
	if inner := errors.Unwrap(err); inner != nil && inner.Error() == err.Error() {
		return inner, st.StackTrace()
	}
	return err, st.StackTrace()
}

func writeFrames(b *strings.Builder, indent string, pcs []uintptr) {
	if len(pcs) == 0 {
		return
	}
	frames := runtime.CallersFrames(pcs)
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			b.WriteString(indent)
			b.WriteString("\tat ")
			b.WriteString(frame.Function)
			b.WriteByte('(')
			b.WriteString(frame.File)
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(frame.Line))
			b.WriteByte(')')
			b.WriteString(LineSeparator)
		}
		if !more {
			break
		}
	}
}
