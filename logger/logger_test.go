package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"golang.org/x/text/language"

	"github.com/philipp01105/jsonlog/catalog"
	"github.com/philipp01105/jsonlog/core"
	"github.com/philipp01105/jsonlog/formatter"
	"github.com/philipp01105/jsonlog/handler/consolehandler"
)

func newTestHandler(buf *bytes.Buffer, registry catalog.Registry) *consolehandler.ConsoleHandler {
	return consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer: buf,
		Formatter: formatter.NewJSONFormatter(formatter.Config{
			Location: time.UTC,
			Registry: registry,
			Reporter: formatter.ReporterFunc(func(string, error) {}),
		}),
	})
}

func lines(buf *bytes.Buffer) []gjson.Result {
	var out []gjson.Result
	for _, l := range strings.Split(strings.TrimSpace(buf.String()), formatter.LineSeparator) {
		if l != "" {
			out = append(out, gjson.Parse(l))
		}
	}
	return out
}

func TestLogger_LevelGate(t *testing.T) {
	var buf bytes.Buffer
	log := NewBuilder().
		WithName("svc.A").
		WithHandler(newTestHandler(&buf, nil)).
		WithLevel(InfoLevel).
		Build()

	log.Fine("fine message")
	log.Config("config message")
	assert.Zero(t, buf.Len(), "events below INFO must not be written")

	log.Info("info message")
	log.Warning("warning message")
	log.Severe("severe message")

	got := lines(&buf)
	require.Len(t, got, 3)
	assert.Equal(t, "INFO", got[0].Get(formatter.LevelKey).String())
	assert.Equal(t, "WARNING", got[1].Get(formatter.LevelKey).String())
	assert.Equal(t, "SEVERE", got[2].Get(formatter.LevelKey).String())
}

func TestLogger_InfoEvent(t *testing.T) {
	var buf bytes.Buffer
	log := NewBuilder().WithName("svc.A").WithHandler(newTestHandler(&buf, nil)).Build()

	before := time.Now().UnixMilli()
	log.Info("Service started")

	got := lines(&buf)
	require.Len(t, got, 1)
	line := got[0]
	assert.Equal(t, "INFO", line.Get(formatter.LevelKey).String())
	assert.Equal(t, "800", line.Get(formatter.LevelValueKey).String())
	assert.Equal(t, "svc.A", line.Get(formatter.LoggerNameKey).String())
	assert.Equal(t, "Service started", line.Get(formatter.LogMessageKey).String())
	assert.Equal(t, "hazelcast", line.Get(formatter.ProductIDKey).String())
	assert.GreaterOrEqual(t, line.Get(formatter.TimeMillisKey).Int(), before)
	assert.False(t, line.Get(formatter.ClassNameKey).Exists())
}

func TestLogger_Parameters(t *testing.T) {
	var buf bytes.Buffer
	log := NewBuilder().WithName("svc.A").WithHandler(newTestHandler(&buf, nil)).Build()

	log.Warning("Order {0} failed for {1}", "42", "customerX")

	got := lines(&buf)
	require.Len(t, got, 1)
	assert.Equal(t, "Order 42 failed for customerX", got[0].Get(formatter.LogMessageKey).String())
}

func TestLogger_SourceLocation(t *testing.T) {
	t.Run("caller capture", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewBuilder().
			WithName("svc.A").
			WithHandler(newTestHandler(&buf, nil)).
			WithLevel(FinestLevel).
			WithCaller(true).
			Build()

		log.Finer("Entering method")

		got := lines(&buf)
		require.Len(t, got, 1)
		assert.Equal(t, "FINER", got[0].Get(formatter.LevelKey).String())
		assert.True(t, strings.HasSuffix(got[0].Get(formatter.ClassNameKey).String(), "/logger"))
		assert.Equal(t, "TestLogger_SourceLocation.func1", got[0].Get(formatter.MethodNameKey).String())
	})

	t.Run("logger name as class", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewBuilder().
			WithName("svc.A").
			WithHandler(newTestHandler(&buf, nil)).
			WithLevel(FinestLevel).
			Build()

		log.Finer("Entering method")

		got := lines(&buf)
		require.Len(t, got, 1)
		assert.Equal(t, "svc.A", got[0].Get(formatter.ClassNameKey).String())
		assert.False(t, got[0].Get(formatter.MethodNameKey).Exists())
	})
}

func TestLogger_Errors(t *testing.T) {
	var buf bytes.Buffer
	log := NewBuilder().WithName("svc.A").WithHandler(newTestHandler(&buf, nil)).Build()

	log.SevereErr("", core.WithStack(errors.New("disk full")))
	log.WarningErr("Retrying", errors.New("timeout"))

	got := lines(&buf)
	require.Len(t, got, 2)

	blank := got[0].Get(formatter.LogMessageKey)
	require.True(t, blank.IsObject())
	assert.Equal(t, "disk full", blank.Get(formatter.ExceptionKey).String())
	assert.Contains(t, blank.Get(formatter.StackTraceKey).String(), "*errors.errorString: disk full")

	msg := got[1].Get(formatter.LogMessageKey)
	require.True(t, msg.IsObject())
	assert.Equal(t, "Retrying", msg.Get(formatter.ExceptionKey).String())
	assert.Contains(t, msg.Get(formatter.StackTraceKey).String(), "timeout")
}

func TestLogger_IsLoggable(t *testing.T) {
	tests := []struct {
		threshold Level
		level     Level
		want      bool
	}{
		{InfoLevel, InfoLevel, true},
		{InfoLevel, SevereLevel, true},
		{InfoLevel, ConfigLevel, false},
		{FineLevel, FineLevel, true},
		{FineLevel, FinerLevel, false},
		{AllLevel, FinestLevel, true},
		{OffLevel, SevereLevel, false},
		{AllLevel, OffLevel, false},
	}

	for _, tt := range tests {
		log := NewBuilder().WithLevel(tt.threshold).Build()
		assert.Equal(t, tt.want, log.IsLoggable(tt.level), "threshold %s, level %s", tt.threshold, tt.level)
	}

	log := NewBuilder().WithLevel(FineLevel).Build()
	assert.True(t, log.IsFineEnabled())
	assert.False(t, log.IsFinestEnabled())
	assert.Equal(t, FineLevel, log.Level())
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	log := NewBuilder().WithName("svc.A").WithHandler(newTestHandler(&buf, nil)).Build()

	log.Log(FineLevel, "hidden", nil)
	log.Log(SevereLevel, "Job {0} crashed", errors.New("oom"), "nightly")

	got := lines(&buf)
	require.Len(t, got, 1)
	assert.Equal(t, "Job nightly crashed", got[0].Get(formatter.LogMessageKey+"."+formatter.ExceptionKey).String())
}

func TestLogger_LogEvent(t *testing.T) {
	var buf bytes.Buffer
	log := NewBuilder().WithHandler(newTestHandler(&buf, nil)).Build()

	ev := core.NewEvent(core.FineSeverity, "dropped")
	log.LogEvent(ev)
	assert.Zero(t, buf.Len())

	ev = core.NewEvent(core.WarningSeverity, "prebuilt")
	ev.LoggerName = "svc.B"
	ev.ThreadID = 99
	log.LogEvent(ev)

	got := lines(&buf)
	require.Len(t, got, 1)
	assert.Equal(t, "svc.B", got[0].Get(formatter.LoggerNameKey).String())
	assert.Equal(t, "99", got[0].Get(formatter.ThreadIDKey).String())
}

func TestLogger_Catalog(t *testing.T) {
	cat := catalog.MustNew(language.English, map[string]string{"order.failed": "Order {0} failed"})
	registry := catalog.NewMapRegistry()
	registry.Register("svc.A", cat)

	var buf bytes.Buffer
	log := NewBuilder().
		WithName("svc.A").
		WithHandler(newTestHandler(&buf, registry)).
		WithCatalog(cat).
		Build()

	log.Info("order.failed", "42")

	got := lines(&buf)
	require.Len(t, got, 1)
	assert.Equal(t, "Order 42 failed", got[0].Get(formatter.LogMessageKey).String())
	assert.Equal(t, "order.failed", got[0].Get(formatter.MessageIDKey).String())
}

func TestLogger_CoarseClock(t *testing.T) {
	var buf bytes.Buffer
	log := NewBuilder().WithHandler(newTestHandler(&buf, nil)).WithCoarseClock(true).Build()

	log.Info("coarse")

	got := lines(&buf)
	require.Len(t, got, 1)
	millis := got[0].Get(formatter.TimeMillisKey).Int()
	assert.InDelta(t, time.Now().UnixMilli(), millis, 1000)
}

func TestLogger_Named(t *testing.T) {
	var buf bytes.Buffer
	parent := NewBuilder().WithName("svc").WithHandler(newTestHandler(&buf, nil)).Build()
	child := parent.Named("svc.child")

	assert.Equal(t, "svc", parent.Name())
	assert.Equal(t, "svc.child", child.Name())

	child.Info("hello")
	got := lines(&buf)
	require.Len(t, got, 1)
	assert.Equal(t, "svc.child", got[0].Get(formatter.LoggerNameKey).String())
}

func TestLogger_NoHandler(t *testing.T) {
	log := NewBuilder().Build()
	assert.NotPanics(t, func() {
		log.Info("nowhere")
		log.LogEvent(core.NewEvent(core.SevereSeverity, "nowhere"))
	})
	assert.NoError(t, log.Close())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warning")
	require.NoError(t, err)
	assert.Equal(t, WarningLevel, level)

	level, err = ParseLevel("500")
	require.NoError(t, err)
	assert.Equal(t, FineLevel, level)

	_, err = ParseLevel("DEBUG")
	assert.ErrorIs(t, err, core.ErrUnknownSeverity)
}

func BenchmarkLogger_Disabled(b *testing.B) {
	log := NewBuilder().WithLevel(InfoLevel).Build()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		log.Fine("hidden {0}", i)
	}
}
