package config

import (
	"fmt"
	"strings"

	lconfig "github.com/lixenwraith/config"

	"github.com/philipp01105/jsonlog/core"
	"github.com/philipp01105/jsonlog/formatter"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "JSON_LOGGING_HAZELCAST_"

// Output formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Output destinations
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
	OutputFile   = "file"
)

type Config struct {
	Level            string     `toml:"level"`
	LogSource        bool       `toml:"log_source"`
	RecordNumber     bool       `toml:"record_number"`
	TimestampPattern string     `toml:"timestamp_pattern"`
	Timezone         string     `toml:"timezone"` // IANA name, "Local" or "UTC"
	ProductID        string     `toml:"product_id"`
	Format           string     `toml:"format"` // "json" or "text"
	Output           string     `toml:"output"` // "stdout", "stderr" or "file"
	File             FileConfig `toml:"file"`
	CatalogDir       string     `toml:"catalog_dir"`
	Language         string     `toml:"language"`
}

type FileConfig struct {
	Path       string `toml:"path"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		Level:            core.InfoSeverity.String(),
		TimestampPattern: formatter.DefaultTimestampPattern,
		Timezone:         "Local",
		ProductID:        formatter.DefaultProductID,
		Format:           FormatJSON,
		Output:           OutputStdout,
		File: FileConfig{
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
		Language: "en",
	}
}

// Load reads the configuration. An empty path skips the file layer; a
// file that does not exist is treated the same way.
func Load(path string) (*Config, error) {
	b := lconfig.NewBuilder().
		WithDefaults(Defaults()).
		WithEnvPrefix(EnvPrefix).
		WithEnvTransform(envTransform)

	if path != "" {
		b = b.WithFile(path).
			WithSources(
				lconfig.SourceEnv,
				lconfig.SourceFile,
				lconfig.SourceDefault,
			)
	} else {
		b = b.WithSources(
			lconfig.SourceEnv,
			lconfig.SourceDefault,
		)
	}

	lcfg, err := b.Build()
	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg := &Config{}
	if err := lcfg.Scan("", cfg); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return cfg, cfg.Validate()
}

func envTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	return EnvPrefix + env
}

// Threshold parses the configured level. An unset level means INFO.
func (c *Config) Threshold() (core.Severity, error) {
	if strings.TrimSpace(c.Level) == "" {
		return core.InfoSeverity, nil
	}
	return core.ParseSeverity(c.Level)
}
