package handler

import (
	"errors"

	"github.com/philipp01105/jsonlog/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log event. The event belongs to the caller and
	// may be recycled once Handle returns.
	Handle(event *core.Event) error

	// Close closes the handler and releases resources
	Close() error
}

// StatsProvider is implemented by handlers that count what they write
type StatsProvider interface {
	Stats() Snapshot
}

// ErrClosed is returned by Handle after Close
var ErrClosed = errors.New("handler closed")
