package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/multierr"

	"github.com/philipp01105/jsonlog/catalog"
	"github.com/philipp01105/jsonlog/core"
	"github.com/philipp01105/jsonlog/handler"
)

// LevelEnvVar names the environment variable holding the default threshold
const LevelEnvVar = "JSON_LOGGING_HAZELCAST_LEVEL"

// LevelSource decides the threshold of a newly created logger
type LevelSource interface {
	Level(loggerName string) (core.Severity, error)
}

// LevelSourceFunc adapts a function to the LevelSource interface
type LevelSourceFunc func(loggerName string) (core.Severity, error)

// Level calls f(loggerName)
func (f LevelSourceFunc) Level(loggerName string) (core.Severity, error) {
	return f(loggerName)
}

// EnvLevelSource reads the threshold from an environment variable. A
// missing or blank variable means INFO; any other value must parse as a
// level name or rank.
type EnvLevelSource struct {
	// Var is the variable name (default: LevelEnvVar)
	Var string
}

// Level implements LevelSource
func (s EnvLevelSource) Level(string) (core.Severity, error) {
	name := s.Var
	if name == "" {
		name = LevelEnvVar
	}
	v, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return core.InfoSeverity, nil
	}
	level, err := core.ParseSeverity(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return level, nil
}

// Factory creates named loggers sharing one handler. Loggers are created
// once per name and cached.
type Factory struct {
	handler       handler.Handler
	levels        LevelSource
	catalogs      catalog.Registry
	includeCaller bool
	coarseClock   bool
	onClose       []func() error

	mu      sync.Mutex
	loggers map[string]*Logger
}

// FactoryOption configures a Factory
type FactoryOption func(*Factory)

// WithLevelSource replaces the environment as source of thresholds
func WithLevelSource(src LevelSource) FactoryOption {
	return func(f *Factory) {
		f.levels = src
	}
}

// WithCatalogs attaches the catalog registered for a logger's name to
// every event it logs
func WithCatalogs(registry catalog.Registry) FactoryOption {
	return func(f *Factory) {
		f.catalogs = registry
	}
}

// WithCallers enables caller capture on every created logger
func WithCallers(enabled bool) FactoryOption {
	return func(f *Factory) {
		f.includeCaller = enabled
	}
}

// WithCoarseClocks makes every created logger use the coarse clock
func WithCoarseClocks(enabled bool) FactoryOption {
	return func(f *Factory) {
		f.coarseClock = enabled
	}
}

// WithOnClose registers fn to run when the factory is closed, after the
// handler
func WithOnClose(fn func() error) FactoryOption {
	return func(f *Factory) {
		f.onClose = append(f.onClose, fn)
	}
}

// NewFactory creates a factory whose loggers write to h
func NewFactory(h handler.Handler, opts ...FactoryOption) *Factory {
	f := &Factory{
		handler: h,
		levels:  EnvLevelSource{},
		loggers: make(map[string]*Logger),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetLogger returns the logger for name. The threshold is read from the
// level source when the logger is first created; an unparsable level is
// an error.
func (f *Factory) GetLogger(name string) (*Logger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if l, ok := f.loggers[name]; ok {
		return l, nil
	}

	level, err := f.levels.Level(name)
	if err != nil {
		return nil, fmt.Errorf("logger %q: %w", name, err)
	}

	b := NewBuilder().
		WithName(name).
		WithHandler(f.handler).
		WithLevel(level).
		WithCaller(f.includeCaller).
		WithCoarseClock(f.coarseClock)
	if f.catalogs != nil {
		if c, ok := f.catalogs.LookupCatalog(name); ok {
			b.WithCatalog(c)
		}
	}

	l := b.Build()
	f.loggers[name] = l
	return l, nil
}

// MustGetLogger is like GetLogger but panics on error
func (f *Factory) MustGetLogger(name string) *Logger {
	l, err := f.GetLogger(name)
	if err != nil {
		panic(err)
	}
	return l
}

// Close closes the shared handler and runs the close hooks. All errors
// are combined.
func (f *Factory) Close() error {
	var err error
	if f.handler != nil {
		err = multierr.Append(err, f.handler.Close())
	}
	for _, fn := range f.onClose {
		err = multierr.Append(err, fn())
	}
	return err
}
