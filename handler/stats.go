package handler

import (
	"sync/atomic"
)

// Stats tracks handler statistics
type Stats struct {
	// ProcessedTotal counts lines written
	ProcessedTotal uint64
	// SuppressedTotal counts events that formatted to an empty line
	SuppressedTotal uint64
	// FailedTotal counts write errors
	FailedTotal uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	atomic.AddUint64(&s.ProcessedTotal, 1)
}

// IncrementSuppressed atomically increments the suppressed counter
func (s *Stats) IncrementSuppressed() {
	atomic.AddUint64(&s.SuppressedTotal, 1)
}

// IncrementFailed atomically increments the failed counter
func (s *Stats) IncrementFailed() {
	atomic.AddUint64(&s.FailedTotal, 1)
}

// Record counts the outcome of one write
func (s *Stats) Record(err error) {
	if err != nil {
		s.IncrementFailed()
		return
	}
	s.IncrementProcessed()
}

// GetProcessed returns the processed count
func (s *Stats) GetProcessed() uint64 {
	return atomic.LoadUint64(&s.ProcessedTotal)
}

// GetSuppressed returns the suppressed count
func (s *Stats) GetSuppressed() uint64 {
	return atomic.LoadUint64(&s.SuppressedTotal)
}

// GetFailed returns the failed count
func (s *Stats) GetFailed() uint64 {
	return atomic.LoadUint64(&s.FailedTotal)
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.ProcessedTotal, 0)
	atomic.StoreUint64(&s.SuppressedTotal, 0)
	atomic.StoreUint64(&s.FailedTotal, 0)
}

// Snapshot returns a snapshot of current stats
type Snapshot struct {
	ProcessedTotal  uint64
	SuppressedTotal uint64
	FailedTotal     uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		ProcessedTotal:  s.GetProcessed(),
		SuppressedTotal: s.GetSuppressed(),
		FailedTotal:     s.GetFailed(),
	}
}
