package core

import (
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Catalog resolves message keys to localized templates
type Catalog interface {
	Lookup(key string) (string, bool)
}

// Event is the record of one logging call. It is treated as immutable
// once handed to a handler.
type Event struct {
	TimeMillis       int64
	Level            Severity
	LoggerName       string
	ThreadID         int64
	ThreadName       string
	Message          string
	Parameters       []any
	Thrown           error
	SourceClassName  string
	SourceMethodName string
	// Catalog is the catalog the event was logged with, if any. It is
	// consulted for the message id only.
	Catalog Catalog
}

// NewEvent creates an event stamped with the current time and goroutine
func NewEvent(level Severity, msg string) *Event {
	id, name := CurrentGoroutine()
	return &Event{
		TimeMillis: time.Now().UnixMilli(),
		Level:      level,
		Message:    msg,
		ThreadID:   id,
		ThreadName: name,
	}
}

// Time returns the event timestamp as a time.Time
func (e *Event) Time() time.Time {
	return time.UnixMilli(e.TimeMillis)
}

// eventPool is a pool of Event objects to reduce allocations
var eventPool = sync.Pool{
	New: func() interface{} {
		return &Event{
			Parameters: make([]any, 0, 4),
		}
	},
}

// GetEvent retrieves a reset Event from the pool
func GetEvent() *Event {
	e := eventPool.Get().(*Event)
	e.TimeMillis = time.Now().UnixMilli()
	e.Parameters = e.Parameters[:0]
	return e
}

// PutEvent returns an Event to the pool
func PutEvent(e *Event) {
	if e == nil {
		return
	}
	params := e.Parameters[:0]
	clear(e.Parameters)
	*e = Event{Parameters: params}
	eventPool.Put(e)
}

// CallerInfo contains information about the caller
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// ClassName returns the qualified receiver (or package) part of Function
func (c CallerInfo) ClassName() string {
	class, _ := SplitFunction(c.Function)
	return class
}

// MethodName returns the unqualified function name
func (c CallerInfo) MethodName() string {
	_, method := SplitFunction(c.Function)
	return method
}

// GetCaller retrieves caller information
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return CallerInfo{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}

// CallerFromPC resolves a program counter, such as slog.Record.PC, to
// caller information. A zero pc yields an undefined CallerInfo.
func CallerFromPC(pc uintptr) CallerInfo {
	if pc == 0 {
		return CallerInfo{}
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.Function == "" {
		return CallerInfo{}
	}
	return CallerInfo{
		File:      frame.File,
		ShortFile: filepath.Base(frame.File),
		Line:      frame.Line,
		Function:  frame.Function,
		Defined:   true,
	}
}

// SplitFunction splits a runtime function name into its class and method
// parts: "pkg/path.(*Server).Start" yields "pkg/path.(*Server)" and
// "Start"; "pkg/path.main" yields "pkg/path" and "main". Closures keep
// their suffix on the method ("Start.func1").
func SplitFunction(fn string) (class, method string) {
	if fn == "" {
		return "", ""
	}
	// The package path may itself contain dots, so only look after the last slash.
	slash := strings.LastIndexByte(fn, '/')
	rest := fn[slash+1:]

	dot := strings.IndexByte(rest, '.')
	if dot < 0 {
		return "", fn
	}
	pkg := fn[:slash+1+dot]
	sym := rest[dot+1:]

	if strings.HasPrefix(sym, "(") {
		if end := strings.Index(sym, ")."); end >= 0 {
			return pkg + "." + sym[:end+1], sym[end+2:]
		}
	}
	// Value receivers render as "Type.Method"; keep the first segment
	// as the class when it is followed by an exported-looking method.
	if recv, m, ok := strings.Cut(sym, "."); ok && !strings.HasPrefix(m, "func") {
		return pkg + "." + recv, m
	}
	return pkg, sym
}
