package core

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Severity is the ordered level of a log event. Comparisons always go
// through the numeric rank, never through identity.
type Severity int32

const (
	// AllSeverity is a threshold that lets every event through
	AllSeverity Severity = math.MinInt32
	// FinestSeverity for highly detailed tracing
	FinestSeverity Severity = 300
	// FinerSeverity for fairly detailed tracing
	FinerSeverity Severity = 400
	// FineSeverity for tracing information
	FineSeverity Severity = 500
	// ConfigSeverity for static configuration messages
	ConfigSeverity Severity = 700
	// InfoSeverity for informational messages (default threshold)
	InfoSeverity Severity = 800
	// WarningSeverity for potential problems
	WarningSeverity Severity = 900
	// SevereSeverity for serious failures
	SevereSeverity Severity = 1000
	// OffSeverity is a threshold that suppresses every event
	OffSeverity Severity = math.MaxInt32
)

// ErrUnknownSeverity is returned when a severity name or rank cannot be parsed
var ErrUnknownSeverity = errors.New("unknown severity")

// Severities lists the event severities in ascending order
var Severities = [...]Severity{
	FinestSeverity,
	FinerSeverity,
	FineSeverity,
	ConfigSeverity,
	InfoSeverity,
	WarningSeverity,
	SevereSeverity,
}

// Rank returns the numeric rank of the severity
func (s Severity) Rank() int {
	return int(s)
}

// String returns the upper-case name of the severity
func (s Severity) String() string {
	switch s {
	case AllSeverity:
		return "ALL"
	case FinestSeverity:
		return "FINEST"
	case FinerSeverity:
		return "FINER"
	case FineSeverity:
		return "FINE"
	case ConfigSeverity:
		return "CONFIG"
	case InfoSeverity:
		return "INFO"
	case WarningSeverity:
		return "WARNING"
	case SevereSeverity:
		return "SEVERE"
	case OffSeverity:
		return "OFF"
	default:
		return strconv.Itoa(int(s))
	}
}

// Enabled reports whether an event at level passes the threshold s
func (s Severity) Enabled(level Severity) bool {
	return s.Rank() <= level.Rank()
}

// ParseSeverity converts a name or a decimal rank to a Severity.
// Names are matched case-insensitively; any int32 rank is accepted.
// Anything else yields an error wrapping ErrUnknownSeverity.
func ParseSeverity(s string) (Severity, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch name {
	case "ALL":
		return AllSeverity, nil
	case "FINEST":
		return FinestSeverity, nil
	case "FINER":
		return FinerSeverity, nil
	case "FINE":
		return FineSeverity, nil
	case "CONFIG":
		return ConfigSeverity, nil
	case "INFO":
		return InfoSeverity, nil
	case "WARNING":
		return WarningSeverity, nil
	case "SEVERE":
		return SevereSeverity, nil
	case "OFF":
		return OffSeverity, nil
	}

	// Any rank is a valid threshold, e.g. 850 sits between INFO and WARNING
	if rank, err := strconv.ParseInt(name, 10, 32); err == nil {
		return Severity(rank), nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownSeverity, s)
}
