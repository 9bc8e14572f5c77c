package handler

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/jsonlog/core"
)

// MultiHandler sends log events to multiple handlers
type MultiHandler struct {
	handlers []Handler
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Handle processes a log event by sending it to all handlers. Every
// handler sees the event even if an earlier one fails; the failures are
// combined.
func (h *MultiHandler) Handle(event *core.Event) error {
	var err error
	for _, handler := range h.handlers {
		err = multierr.Append(err, handler.Handle(event))
	}
	return err
}

// Stats sums the statistics of the children that provide them
func (h *MultiHandler) Stats() Snapshot {
	var total Snapshot
	for _, handler := range h.handlers {
		if sp, ok := handler.(StatsProvider); ok {
			s := sp.Stats()
			total.ProcessedTotal += s.ProcessedTotal
			total.SuppressedTotal += s.SuppressedTotal
			total.FailedTotal += s.FailedTotal
		}
	}
	return total
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var err error
	for _, handler := range h.handlers {
		err = multierr.Append(err, handler.Close())
	}
	return err
}
