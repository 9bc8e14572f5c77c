package logger

import (
	"github.com/philipp01105/jsonlog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Severity

const (
	AllLevel     = core.AllSeverity
	FinestLevel  = core.FinestSeverity
	FinerLevel   = core.FinerSeverity
	FineLevel    = core.FineSeverity
	ConfigLevel  = core.ConfigSeverity
	InfoLevel    = core.InfoSeverity
	WarningLevel = core.WarningSeverity
	SevereLevel  = core.SevereSeverity
	OffLevel     = core.OffSeverity
)

// ParseLevel converts a level name or numeric rank to a Level
func ParseLevel(s string) (Level, error) {
	return core.ParseSeverity(s)
}
