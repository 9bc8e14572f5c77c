package consolehandler

import (
	"bytes"
	"io"
	"sync"
	"sync/atomic"

	"github.com/philipp01105/jsonlog/core"
	"github.com/philipp01105/jsonlog/formatter"
	"github.com/philipp01105/jsonlog/handler"
)

// ConsoleHandler writes each event as one formatted line to its writer.
// Events that format to an empty line are counted as suppressed and
// nothing is written for them.
type ConsoleHandler struct {
	writer          io.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	concurrentSafe  bool // true if writer is safe for concurrent Write calls
	stats           *handler.Stats
	mu              sync.Mutex // protects syncBuf and writer
	syncBuf         bytes.Buffer
	parBufPool      sync.Pool // pool of *bytes.Buffer for the contended path
	closed          atomic.Bool
}

// Handle formats and writes an event.
// Uses TryLock on mu to format into the handler-owned buffer when
// uncontended. When contended, formats into a pooled buffer outside the
// lock and writes under mu (or directly for concurrent-safe writers).
func (h *ConsoleHandler) Handle(event *core.Event) error {
	if h.closed.Load() {
		return handler.ErrClosed
	}

	if h.bufferFormatter != nil {
		if h.mu.TryLock() {
			h.syncBuf.Reset()
			if !h.bufferFormatter.FormatEvent(event, &h.syncBuf) || h.syncBuf.Len() == 0 {
				h.mu.Unlock()
				h.stats.IncrementSuppressed()
				return nil
			}
			_, err := h.writer.Write(h.syncBuf.Bytes())
			h.mu.Unlock()
			h.stats.Record(err)
			return err
		}

		pb := h.parBufPool.Get().(*bytes.Buffer)
		pb.Reset()
		defer h.parBufPool.Put(pb)

		if !h.bufferFormatter.FormatEvent(event, pb) || pb.Len() == 0 {
			h.stats.IncrementSuppressed()
			return nil
		}
		err := h.writeLine(pb.Bytes())
		h.stats.Record(err)
		return err
	}

	line := h.formatter.Format(event)
	if line == "" {
		h.stats.IncrementSuppressed()
		return nil
	}
	err := h.writeLine([]byte(line))
	h.stats.Record(err)
	return err
}

func (h *ConsoleHandler) writeLine(p []byte) error {
	if h.concurrentSafe {
		_, err := h.writer.Write(p)
		return err
	}
	h.mu.Lock()
	_, err := h.writer.Write(p)
	h.mu.Unlock()
	return err
}

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close marks the handler closed. The writer itself is left open since
// it is usually a standard stream owned by the process.
func (h *ConsoleHandler) Close() error {
	h.closed.Store(true)
	return nil
}
