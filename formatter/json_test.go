package formatter

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"golang.org/x/text/language"

	"github.com/philipp01105/jsonlog/catalog"
	"github.com/philipp01105/jsonlog/core"
)

type recordingReporter struct {
	mu      sync.Mutex
	reports []string
}

func (r *recordingReporter) Report(context string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, context+": "+err.Error())
}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

func newTestFormatter(t *testing.T, cfg Config) (*JSONFormatter, *recordingReporter) {
	t.Helper()
	rep := &recordingReporter{}
	cfg.Reporter = rep
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return NewJSONFormatter(cfg), rep
}

// parseLine checks that out is exactly one JSON object plus the line separator
func parseLine(t *testing.T, out string) gjson.Result {
	t.Helper()
	require.True(t, strings.HasSuffix(out, LineSeparator), "line must end with the separator: %q", out)
	body := strings.TrimSuffix(out, LineSeparator)
	require.NotContains(t, body, "\n", "line must not contain raw newlines")
	require.True(t, json.Valid([]byte(body)), "invalid JSON: %s", body)
	res := gjson.Parse(body)
	require.True(t, res.IsObject())
	return res
}

var testMillis = time.Date(2026, 2, 18, 13, 4, 5, 123_000_000, time.UTC).UnixMilli()

func testEvent(level core.Severity, msg string) *core.Event {
	return &core.Event{
		TimeMillis: testMillis,
		Level:      level,
		LoggerName: "svc.A",
		ThreadID:   7,
		ThreadName: "worker-7",
		Message:    msg,
	}
}

func TestJSONFormatter_InfoScenario(t *testing.T) {
	f, rep := newTestFormatter(t, Config{})

	ev := testEvent(core.InfoSeverity, "Service started")
	ev.SourceClassName = "svc.A"
	ev.SourceMethodName = "start"

	line := parseLine(t, f.Format(ev))

	assert.Equal(t, "INFO", line.Get(LevelKey).String())
	assert.Equal(t, "800", line.Get(LevelValueKey).String())
	assert.Equal(t, "svc.A", line.Get(LoggerNameKey).String())
	assert.Equal(t, "Service started", line.Get(LogMessageKey).String())
	assert.Equal(t, DefaultProductID, line.Get(ProductIDKey).String())
	assert.Equal(t, "7", line.Get(ThreadIDKey).String())
	assert.False(t, line.Get(ClassNameKey).Exists())
	assert.False(t, line.Get(MethodNameKey).Exists())
	assert.False(t, line.Get(MessageIDKey).Exists())
	assert.False(t, line.Get(RecordKey).Exists())
	assert.Zero(t, rep.count())
}

func TestJSONFormatter_FieldOrder(t *testing.T) {
	f, _ := newTestFormatter(t, Config{IncludeRecordSequence: true, Sequence: &Sequence{}})
	ev := testEvent(core.FineSeverity, "hello")
	ev.SourceClassName = "svc.A"
	ev.SourceMethodName = "run"

	var keys []string
	parseLine(t, f.Format(ev)).ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})

	assert.Equal(t, []string{
		TimestampKey, TimeMillisKey, LevelKey, LevelValueKey, ProductIDKey,
		LoggerNameKey, ThreadIDKey, ThreadNameKey, ClassNameKey, MethodNameKey,
		RecordKey, LogMessageKey,
	}, keys)
}

func TestJSONFormatter_Timestamp(t *testing.T) {
	f, _ := newTestFormatter(t, Config{})
	line := parseLine(t, f.Format(testEvent(core.InfoSeverity, "x")))

	assert.Equal(t, strconv.FormatInt(testMillis, 10), line.Get(TimeMillisKey).String())
	assert.Equal(t, "2026-02-18T13:04:05.123+0000", line.Get(TimestampKey).String())

	parsed, err := time.Parse("2006-01-02T15:04:05.000-0700", line.Get(TimestampKey).String())
	require.NoError(t, err)
	assert.Equal(t, testMillis, parsed.UnixMilli())
}

func TestJSONFormatter_TimestampLocationAndPattern(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	f, _ := newTestFormatter(t, Config{
		TimestampPattern: "dd.MM.yyyy HH:mm:ss,SSS XXX",
		Location:         loc,
	})
	line := parseLine(t, f.Format(testEvent(core.InfoSeverity, "x")))
	assert.Equal(t, "18.02.2026 14:04:05,123 +01:00", line.Get(TimestampKey).String())
	assert.Equal(t, "dd.MM.yyyy HH:mm:ss,SSS XXX", f.TimestampPattern())
}

func TestJSONFormatter_InvalidPattern(t *testing.T) {
	f, rep := newTestFormatter(t, Config{})

	err := f.SetTimestampPattern("yyyy-MM-dd qq")
	require.ErrorIs(t, err, ErrBadPattern)

	assert.Equal(t, "", f.Format(testEvent(core.InfoSeverity, "dropped")))
	assert.Equal(t, 1, rep.count())

	require.NoError(t, f.SetTimestampPattern(""))
	assert.NotEmpty(t, f.Format(testEvent(core.InfoSeverity, "kept")))
	assert.Equal(t, 1, rep.count())
}

func TestJSONFormatter_NilEvent(t *testing.T) {
	f, rep := newTestFormatter(t, Config{})
	assert.Equal(t, "", f.Format(nil))
	assert.Equal(t, 1, rep.count())
}

type stubCatalog map[string]string

func (c stubCatalog) Lookup(key string) (string, bool) {
	v, ok := c[key]
	return v, ok
}

type panickingCatalog struct{}

func (panickingCatalog) Lookup(string) (string, bool) {
	panic("catalog exploded")
}

func TestJSONFormatter_PanicIsReported(t *testing.T) {
	f, rep := newTestFormatter(t, Config{})
	ev := testEvent(core.InfoSeverity, "key")
	ev.Catalog = panickingCatalog{}

	assert.Equal(t, "", f.Format(ev))
	require.Equal(t, 1, rep.count())
	assert.Contains(t, rep.reports[0], "catalog exploded")
}

func TestJSONFormatter_LevelValueOrdering(t *testing.T) {
	f, _ := newTestFormatter(t, Config{})

	prev := int64(-1)
	for _, level := range core.Severities {
		line := parseLine(t, f.Format(testEvent(level, "x")))
		assert.Equal(t, level.String(), line.Get(LevelKey).String())
		v := line.Get(LevelValueKey).Int()
		assert.Greater(t, v, prev, "level %s", level)
		prev = v
	}
}

func TestJSONFormatter_SourceLocationPolicy(t *testing.T) {
	tests := []struct {
		name   string
		level  core.Severity
		force  bool
		expect bool
	}{
		{"finest", core.FinestSeverity, false, true},
		{"finer", core.FinerSeverity, false, true},
		{"fine", core.FineSeverity, false, true},
		{"config", core.ConfigSeverity, false, false},
		{"info", core.InfoSeverity, false, false},
		{"severe", core.SevereSeverity, false, false},
		{"info forced", core.InfoSeverity, true, true},
		{"severe forced", core.SevereSeverity, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newTestFormatter(t, Config{IncludeSourceLocation: tt.force})
			ev := testEvent(tt.level, "entering")
			ev.SourceClassName = "svc.A"
			ev.SourceMethodName = "start"

			line := parseLine(t, f.Format(ev))
			assert.Equal(t, tt.expect, line.Get(ClassNameKey).Exists())
			assert.Equal(t, tt.expect, line.Get(MethodNameKey).Exists())
			if tt.expect {
				assert.Equal(t, "svc.A", line.Get(ClassNameKey).String())
				assert.Equal(t, "start", line.Get(MethodNameKey).String())
			}
		})
	}
}

func TestJSONFormatter_EmptySourceFieldsOmitted(t *testing.T) {
	f, _ := newTestFormatter(t, Config{IncludeSourceLocation: true})
	line := parseLine(t, f.Format(testEvent(core.InfoSeverity, "x")))
	assert.False(t, line.Get(ClassNameKey).Exists())
	assert.False(t, line.Get(MethodNameKey).Exists())
}

func TestJSONFormatter_LoggerNameDefaultsToEmpty(t *testing.T) {
	f, _ := newTestFormatter(t, Config{})
	ev := testEvent(core.InfoSeverity, "x")
	ev.LoggerName = ""

	line := parseLine(t, f.Format(ev))
	name := line.Get(LoggerNameKey)
	require.True(t, name.Exists())
	assert.Equal(t, gjson.String, name.Type)
	assert.Equal(t, "", name.String())
}

func TestJSONFormatter_ThreadNameIsFormattingGoroutine(t *testing.T) {
	f, _ := newTestFormatter(t, Config{})
	ev := testEvent(core.InfoSeverity, "x")

	out := make(chan string)
	go func() {
		out <- f.Format(ev)
	}()
	line := parseLine(t, <-out)

	assert.Equal(t, "7", line.Get(ThreadIDKey).String())
	assert.NotEqual(t, "worker-7", line.Get(ThreadNameKey).String())
	assert.True(t, strings.HasPrefix(line.Get(ThreadNameKey).String(), "goroutine-"))
}

func TestJSONFormatter_BlankMessage(t *testing.T) {
	f, _ := newTestFormatter(t, Config{})

	t.Run("no error", func(t *testing.T) {
		line := parseLine(t, f.Format(testEvent(core.InfoSeverity, "   ")))
		assert.False(t, line.Get(LogMessageKey).Exists())
	})

	t.Run("with error", func(t *testing.T) {
		ev := testEvent(core.SevereSeverity, "")
		ev.Thrown = core.WithStack(errors.New("disk full"))

		line := parseLine(t, f.Format(ev))
		msg := line.Get(LogMessageKey)
		require.True(t, msg.IsObject(), "blank message with an error must be an object")
		assert.Equal(t, "disk full", msg.Get(ExceptionKey).String())
		trace := msg.Get(StackTraceKey).String()
		assert.Contains(t, trace, "*errors.errorString")
		assert.Contains(t, trace, "disk full")
		assert.Contains(t, trace, "\tat ")
	})
}

func TestJSONFormatter_MessageWithError(t *testing.T) {
	f, _ := newTestFormatter(t, Config{})

	ev := testEvent(core.WarningSeverity, "Order {0} failed")
	ev.Parameters = []any{"42"}
	ev.Thrown = errors.New("timeout")

	line := parseLine(t, f.Format(ev))
	msg := line.Get(LogMessageKey)
	require.True(t, msg.IsObject())
	assert.Equal(t, "Order 42 failed", msg.Get(ExceptionKey).String(),
		"_Exception carries the resolved message, not the error text")
	assert.Contains(t, msg.Get(StackTraceKey).String(), "timeout")
}

func TestJSONFormatter_TemplateSubstitution(t *testing.T) {
	f, _ := newTestFormatter(t, Config{})

	ev := testEvent(core.InfoSeverity, "Order {0} failed for {1}")
	ev.Parameters = []any{"42", "customerX"}
	line := parseLine(t, f.Format(ev))
	assert.Equal(t, "Order 42 failed for customerX", line.Get(LogMessageKey).String())

	// Placeholders without parameters stay as they are
	ev = testEvent(core.InfoSeverity, "Order {0} failed")
	line = parseLine(t, f.Format(ev))
	assert.Equal(t, "Order {0} failed", line.Get(LogMessageKey).String())
}

func TestJSONFormatter_CatalogResolution(t *testing.T) {
	registry := catalog.NewMapRegistry()
	cat := catalog.MustNew(language.English, map[string]string{
		"order.failed": "Order {0} failed for {1}",
	})
	registry.Register("svc.A", cat)

	f, rep := newTestFormatter(t, Config{Registry: registry})

	ev := testEvent(core.InfoSeverity, "order.failed")
	ev.Parameters = []any{"42", "customerX"}
	ev.Catalog = cat

	line := parseLine(t, f.Format(ev))
	assert.Equal(t, "Order 42 failed for customerX", line.Get(LogMessageKey).String())
	assert.Equal(t, "order.failed", line.Get(MessageIDKey).String())

	// An empty template is not a message id
	ev = testEvent(core.InfoSeverity, "empty")
	ev.Catalog = stubCatalog{"empty": ""}
	line = parseLine(t, f.Format(ev))
	assert.False(t, line.Get(MessageIDKey).Exists())

	// Unknown keys fall back to the raw message
	ev = testEvent(core.InfoSeverity, "not.a.key")
	ev.Catalog = cat
	line = parseLine(t, f.Format(ev))
	assert.Equal(t, "not.a.key", line.Get(LogMessageKey).String())
	assert.False(t, line.Get(MessageIDKey).Exists())

	// Loggers without a catalog fall back silently
	ev = testEvent(core.InfoSeverity, "order.failed")
	ev.LoggerName = "svc.B"
	line = parseLine(t, f.Format(ev))
	assert.Equal(t, "order.failed", line.Get(LogMessageKey).String())

	assert.Zero(t, rep.count())
}

func TestJSONFormatter_Idempotent(t *testing.T) {
	registry := catalog.NewMapRegistry()
	registry.Register("svc.A", catalog.MustNew(language.English, map[string]string{"k": "value {0}"}))
	f, _ := newTestFormatter(t, Config{Registry: registry})

	ev := testEvent(core.InfoSeverity, "k")
	ev.Parameters = []any{"x"}

	first := parseLine(t, f.Format(ev)).Get(LogMessageKey).String()
	second := parseLine(t, f.Format(ev)).Get(LogMessageKey).String()
	assert.Equal(t, "value x", first)
	assert.Equal(t, first, second)
}

func TestJSONFormatter_RecordSequence(t *testing.T) {
	seq := &Sequence{}
	f, _ := newTestFormatter(t, Config{IncludeRecordSequence: true, Sequence: seq})

	for want := 1; want <= 5; want++ {
		line := parseLine(t, f.Format(testEvent(core.InfoSeverity, "x")))
		assert.Equal(t, strconv.Itoa(want), line.Get(RecordKey).String())
	}

	// A second formatter sharing the sequence continues the count
	g, _ := newTestFormatter(t, Config{IncludeRecordSequence: true, Sequence: seq})
	line := parseLine(t, g.Format(testEvent(core.InfoSeverity, "x")))
	assert.Equal(t, "6", line.Get(RecordKey).String())
}

func TestJSONFormatter_ConcurrentFormatting(t *testing.T) {
	seq := &Sequence{}
	f, rep := newTestFormatter(t, Config{IncludeRecordSequence: true, Sequence: seq})

	const goroutines, perGoroutine = 8, 200
	results := make(chan string, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				ev := testEvent(core.InfoSeverity, "msg {0}")
				ev.TimeMillis = testMillis + int64(i)
				ev.Parameters = []any{g}
				results <- f.Format(ev)
			}
		}(g)
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for out := range results {
		line := parseLine(t, out)
		n := line.Get(RecordKey).String()
		assert.False(t, seen[n], "record number %s repeated", n)
		seen[n] = true

		millis := line.Get(TimeMillisKey).Int()
		want := time.UnixMilli(millis).UTC().Format("2006-01-02T15:04:05.000-0700")
		assert.Equal(t, want, line.Get(TimestampKey).String())
	}
	assert.Len(t, seen, goroutines*perGoroutine)
	assert.Equal(t, uint64(goroutines*perGoroutine), seq.Current())
	assert.Zero(t, rep.count())
}

func TestJSONFormatter_EscapesContent(t *testing.T) {
	f, _ := newTestFormatter(t, Config{})
	ev := testEvent(core.InfoSeverity, "quote \" backslash \\ tab \t newline \n bad \xff end")

	line := parseLine(t, f.Format(ev))
	assert.Equal(t, "quote \" backslash \\ tab \t newline \n bad � end", line.Get(LogMessageKey).String())
}

func TestJSONFormatter_ProductID(t *testing.T) {
	f, _ := newTestFormatter(t, Config{ProductID: "cargo-grid"})
	line := parseLine(t, f.Format(testEvent(core.InfoSeverity, "x")))
	assert.Equal(t, "cargo-grid", line.Get(ProductIDKey).String())
}

func TestJSONFormatter_FormatEventAppends(t *testing.T) {
	f, _ := newTestFormatter(t, Config{})
	buf := getBuffer()
	defer putBuffer(buf)

	buf.WriteString("prefix|")
	require.True(t, f.FormatEvent(testEvent(core.InfoSeverity, "x"), buf))
	assert.True(t, strings.HasPrefix(buf.String(), "prefix|{"))

	n := buf.Len()
	err := f.SetTimestampPattern("'unterminated")
	require.ErrorIs(t, err, ErrBadPattern)
	assert.False(t, f.FormatEvent(testEvent(core.InfoSeverity, "x"), buf))
	assert.Equal(t, n, buf.Len(), "a failed event must not leave partial output")
}

func BenchmarkJSONFormatter(b *testing.B) {
	f := NewJSONFormatter(Config{Location: time.UTC, Reporter: ReporterFunc(func(string, error) {})})
	ev := testEvent(core.InfoSeverity, "Order {0} failed for {1}")
	ev.Parameters = []any{"42", "customerX"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Format(ev)
	}
}
