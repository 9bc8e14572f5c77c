package logger

import (
	"fmt"
	"sync"

	"github.com/philipp01105/jsonlog/formatter"
	"github.com/philipp01105/jsonlog/handler/consolehandler"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

// init builds the default logger: JSON lines on stdout at the threshold
// from JSON_LOGGING_HAZELCAST_LEVEL. An unparsable value panics.
func init() {
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Formatter: formatter.NewJSONFormatter(formatter.Config{}),
	})

	level, err := EnvLevelSource{}.Level("")
	if err != nil {
		panic(fmt.Sprintf("logger: default logger: %v", err))
	}

	defaultLogger = NewBuilder().
		WithHandler(h).
		WithLevel(level).
		Build()
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger

// Log logs a message using the default logger
func Log(level Level, msg string, thrown error, params ...any) {
	Default().Log(level, msg, thrown, params...)
}

// Finest logs a FINEST message using the default logger
func Finest(msg string, params ...any) {
	Default().Finest(msg, params...)
}

// Fine logs a FINE message using the default logger
func Fine(msg string, params ...any) {
	Default().Fine(msg, params...)
}

// Info logs an INFO message using the default logger
func Info(msg string, params ...any) {
	Default().Info(msg, params...)
}

// Warning logs a WARNING message using the default logger
func Warning(msg string, params ...any) {
	Default().Warning(msg, params...)
}

// Severe logs a SEVERE message using the default logger
func Severe(msg string, params ...any) {
	Default().Severe(msg, params...)
}

// SevereErr logs a SEVERE message with an error using the default logger
func SevereErr(msg string, err error) {
	Default().SevereErr(msg, err)
}

// Named creates a logger like the default one with a different name
func Named(name string) *Logger {
	return Default().Named(name)
}
