package filehandler

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipp01105/jsonlog/core"
	"github.com/philipp01105/jsonlog/formatter"
	"github.com/philipp01105/jsonlog/handler"
)

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: JSONFormatter)
	Formatter formatter.Formatter
	// MaxSize is the maximum size in megabytes before rotation (default: 100)
	MaxSize int
	// MaxAge is the maximum number of days to retain rotated files (0 = keep all)
	MaxAge int
	// MaxBackups is the maximum number of old log files to retain (0 = keep all)
	MaxBackups int
	// Compress gzips rotated files
	Compress bool
	// LocalTime names rotated files with local instead of UTC time
	LocalTime bool
	// BufferSize is the size of the write buffer in bytes; 0 writes every
	// line through immediately
	BufferSize int
}

// FileHandler writes formatted events to a file rotated by lumberjack.
// Events that format to an empty line are counted as suppressed.
type FileHandler struct {
	out             *lumberjack.Logger
	bufWriter       *bufio.Writer // nil when unbuffered
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	mu              sync.Mutex
	syncBuf         bytes.Buffer
	stats           *handler.Stats
	closed          bool
}

// NewFileHandler creates a new file handler. The directory of Filename is
// created if needed; the file itself is opened on the first write.
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("filename is required")
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewJSONFormatter(formatter.Config{})
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, err
	}

	h := &FileHandler{
		out: &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		},
		formatter: cfg.Formatter,
		stats:     handler.NewStats(),
	}
	if cfg.BufferSize > 0 {
		h.bufWriter = bufio.NewWriterSize(h.out, cfg.BufferSize)
	}

	// Cache BufferFormatter for the fast path
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	if h.bufferFormatter != nil {
		h.syncBuf.Grow(256)
	}

	return h, nil
}

// Handle formats and writes an event
func (h *FileHandler) Handle(event *core.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return handler.ErrClosed
	}

	var line []byte
	if h.bufferFormatter != nil {
		h.syncBuf.Reset()
		if h.bufferFormatter.FormatEvent(event, &h.syncBuf) {
			line = h.syncBuf.Bytes()
		}
	} else {
		line = []byte(h.formatter.Format(event))
	}

	if len(line) == 0 {
		h.stats.IncrementSuppressed()
		return nil
	}

	var err error
	if h.bufWriter != nil {
		_, err = h.bufWriter.Write(line)
	} else {
		_, err = h.out.Write(line)
	}
	h.stats.Record(err)
	return err
}

// Flush writes buffered lines to the file
func (h *FileHandler) Flush() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.flushLocked()
}

func (h *FileHandler) flushLocked() error {
	if h.bufWriter == nil {
		return nil
	}
	return h.bufWriter.Flush()
}

// Rotate closes the current file, moves it aside and starts a new one
func (h *FileHandler) Rotate() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.flushLocked(); err != nil {
		return err
	}
	return h.out.Rotate()
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close flushes and closes the underlying file.
func (h *FileHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	flushErr := h.flushLocked()
	if err := h.out.Close(); err != nil {
		return err
	}
	return flushErr
}
