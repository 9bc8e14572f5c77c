package config

import (
	"fmt"
	"time"

	"github.com/philipp01105/jsonlog/catalog"
	"github.com/philipp01105/jsonlog/formatter"
)

// Formatter converts the configuration into a formatter.Config. Bundles
// found in CatalogDir are registered under their file stem. The reporter
// is left unset so the formatter falls back to its default.
func (c *Config) Formatter() (formatter.Config, error) {
	loc, err := c.location()
	if err != nil {
		return formatter.Config{}, err
	}
	tag, err := c.languageTag()
	if err != nil {
		return formatter.Config{}, err
	}

	fc := formatter.Config{
		TimestampPattern:      c.TimestampPattern,
		Location:              loc,
		IncludeSourceLocation: c.LogSource,
		IncludeRecordSequence: c.RecordNumber,
		ProductID:             c.ProductID,
		Language:              tag,
	}

	if c.CatalogDir != "" {
		registry := catalog.NewMapRegistry()
		if _, err := catalog.LoadDir(c.CatalogDir, tag, registry); err != nil {
			return formatter.Config{}, fmt.Errorf("failed to load catalogs: %w", err)
		}
		fc.Registry = registry
	}

	return fc, nil
}

// NewFormatter builds the formatter selected by Format
func (c *Config) NewFormatter(reporter formatter.ErrorReporter) (formatter.Formatter, error) {
	fc, err := c.Formatter()
	if err != nil {
		return nil, err
	}
	fc.Reporter = reporter
	return c.NewFormatterFrom(fc)
}

// NewFormatterFrom builds the formatter selected by Format from an
// already converted fc, so callers can share fc.Registry with their loggers
func (c *Config) NewFormatterFrom(fc formatter.Config) (formatter.Formatter, error) {
	switch c.Format {
	case FormatText:
		return formatter.NewTextFormatter(fc)
	default:
		return formatter.NewJSONFormatter(fc), nil
	}
}

func (c *Config) location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	default:
		return time.LoadLocation(c.Timezone)
	}
}
