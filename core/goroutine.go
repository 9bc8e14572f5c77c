package core

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

var goroutinePrefix = []byte("goroutine ")

var stackBufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 64)
		return &b
	},
}

// CurrentGoroutine returns the id and display name of the calling
// goroutine. Goroutine 1 is named "main"; every other goroutine is
// named "goroutine-<id>". The id is 0 if it cannot be determined.
func CurrentGoroutine() (int64, string) {
	id := goroutineID()
	return id, GoroutineName(id)
}

// GoroutineName returns the display name for a goroutine id
func GoroutineName(id int64) string {
	switch id {
	case 0:
		return "unknown"
	case 1:
		return "main"
	default:
		return "goroutine-" + strconv.FormatInt(id, 10)
	}
}

// goroutineID parses the header line of runtime.Stack, which has the
// form "goroutine 42 [running]:".
func goroutineID() int64 {
	bp := stackBufPool.Get().(*[]byte)
	defer stackBufPool.Put(bp)

	b := *bp
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
