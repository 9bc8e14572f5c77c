package core

import (
	"sync"
	"sync/atomic"
	"time"
)

var (
	coarseClockOnce sync.Once
	coarseMillis    atomic.Int64
)

// StartCoarseClock starts the background goroutine that refreshes the
// cached epoch milliseconds every 500µs. Calling it again is a no-op.
// The goroutine runs for the lifetime of the process.
func StartCoarseClock() {
	coarseClockOnce.Do(func() {
		coarseMillis.Store(time.Now().UnixMilli())
		go func() {
			ticker := time.NewTicker(500 * time.Microsecond)
			for range ticker.C {
				coarseMillis.Store(time.Now().UnixMilli())
			}
		}()
	})
}

// CoarseNowMillis returns the cached epoch milliseconds, suitable for
// Event.TimeMillis. It returns 0 until StartCoarseClock has been called.
func CoarseNowMillis() int64 {
	return coarseMillis.Load()
}

// CoarseNow returns the cached time with millisecond precision
func CoarseNow() time.Time {
	return time.UnixMilli(coarseMillis.Load())
}
