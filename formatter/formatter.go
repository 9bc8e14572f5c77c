package formatter

import (
	"bytes"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"

	"github.com/philipp01105/jsonlog/catalog"
	"github.com/philipp01105/jsonlog/core"
)

const (
	// DefaultTimestampPattern renders RFC 3339 with milliseconds and a
	// numeric zone offset
	DefaultTimestampPattern = "yyyy-MM-dd'T'HH:mm:ss.SSSZ"
	// DefaultProductID is the product tag emitted when none is configured
	DefaultProductID = "hazelcast"
)

// LineSeparator terminates every formatted line
var LineSeparator = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

// Formatter defines the interface for event formatters
type Formatter interface {
	// Format renders an event as one line. It never panics; when the
	// event cannot be rendered it returns the empty string.
	Format(event *core.Event) string
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatEvent appends the rendered event to buf. On failure it
	// leaves buf as it was and returns false.
	FormatEvent(event *core.Event, buf *bytes.Buffer) bool
}

// Config holds formatter configuration. It is read once when a formatter
// is created.
type Config struct {
	// TimestampPattern overrides DefaultTimestampPattern
	TimestampPattern string
	// Location for rendering timestamps (default: time.Local)
	Location *time.Location
	// IncludeSourceLocation emits ClassName and MethodName at every level
	IncludeSourceLocation bool
	// IncludeRecordSequence emits a RecordNumber drawn from Sequence
	IncludeRecordSequence bool
	// ProductID is emitted verbatim as _Version (default: DefaultProductID)
	ProductID string
	// Sequence backs RecordNumber (default: the process-wide sequence)
	Sequence *Sequence
	// Registry resolves message catalogs by logger name (default: none)
	Registry catalog.Registry
	// Reporter receives formatting failures (default: zap on stderr)
	Reporter ErrorReporter
	// Language used to print template parameters (default: English)
	Language language.Tag
}

func applyDefaults(cfg *Config) {
	if cfg.TimestampPattern == "" {
		cfg.TimestampPattern = DefaultTimestampPattern
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.ProductID == "" {
		cfg.ProductID = DefaultProductID
	}
	if cfg.Sequence == nil {
		cfg.Sequence = DefaultSequence
	}
	if cfg.Reporter == nil {
		cfg.Reporter = DefaultReporter()
	}
	if cfg.Language == language.Und {
		cfg.Language = language.English
	}
}

// Sequence is a monotonically increasing record counter. Values never
// repeat and never go backward, whatever the interleaving of callers.
type Sequence struct {
	n atomic.Uint64
}

// DefaultSequence is shared by every formatter that does not bring its own
var DefaultSequence = &Sequence{}

// Next increments the counter and returns the new value; the first call returns 1
func (s *Sequence) Next() uint64 {
	return s.n.Add(1)
}

// Current returns the last value handed out
func (s *Sequence) Current() uint64 {
	return s.n.Load()
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(512)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
