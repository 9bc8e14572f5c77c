package config

import (
	"fmt"

	lconfig "github.com/lixenwraith/config"
	"golang.org/x/text/language"

	"github.com/philipp01105/jsonlog/formatter"
)

// Validate checks the configuration for values that would fail later
func (c *Config) Validate() error {
	if _, err := c.Threshold(); err != nil {
		return fmt.Errorf("invalid level: %w", err)
	}

	if err := lconfig.NonEmpty(c.ProductID); err != nil {
		return fmt.Errorf("product_id: %w", err)
	}

	if c.TimestampPattern != "" {
		if _, err := formatter.CompilePattern(c.TimestampPattern); err != nil {
			return fmt.Errorf("timestamp_pattern: %w", err)
		}
	}

	if _, err := c.location(); err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}

	if _, err := c.languageTag(); err != nil {
		return fmt.Errorf("invalid language: %w", err)
	}

	validFormats := map[string]bool{
		FormatJSON: true, FormatText: true, "": true,
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("invalid format: %s", c.Format)
	}

	switch c.Output {
	case OutputStdout, OutputStderr, "":
	case OutputFile:
		if err := lconfig.NonEmpty(c.File.Path); err != nil {
			return fmt.Errorf("file output: missing path")
		}
		if c.File.MaxSizeMB < 0 || c.File.MaxBackups < 0 || c.File.MaxAgeDays < 0 {
			return fmt.Errorf("file output: negative rotation limits")
		}
	default:
		return fmt.Errorf("invalid output: %s", c.Output)
	}

	return nil
}

func (c *Config) languageTag() (language.Tag, error) {
	if c.Language == "" {
		return language.English, nil
	}
	return language.Parse(c.Language)
}
