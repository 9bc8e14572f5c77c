package main

import (
	"flag"
	"fmt"
	"io"
)

// flagConfig holds the command-line options
type flagConfig struct {
	ConfigFile string
	LoggerName string
	Level      string // overrides the configured threshold
	LineLevel  string // severity of lines without a level prefix
	Format     string
	Output     string
	LogFile    string
	Source     bool
	Records    bool
	CatalogDir string
}

func parseFlags(args []string, stderr io.Writer) (*flagConfig, error) {
	fs := flag.NewFlagSet("jsonlog", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fc := &flagConfig{}
	fs.StringVar(&fc.ConfigFile, "config", "", "Config file path (TOML)")
	fs.StringVar(&fc.LoggerName, "logger", "stdin", "Logger name carried by every line")
	fs.StringVar(&fc.Level, "level", "", "Threshold: FINEST..SEVERE, ALL, OFF or a numeric rank (overrides config)")
	fs.StringVar(&fc.LineLevel, "line-level", "INFO", "Level of lines without a [LEVEL] prefix")
	fs.StringVar(&fc.Format, "format", "", "Output format: json, text (overrides config)")
	fs.StringVar(&fc.Output, "output", "", "Output: stdout, stderr, file (overrides config)")
	fs.StringVar(&fc.LogFile, "log-file", "", "Log file path (implies -output file)")
	fs.BoolVar(&fc.Source, "source", false, "Emit ClassName and MethodName at every level")
	fs.BoolVar(&fc.Records, "records", false, "Emit RecordNumber")
	fs.StringVar(&fc.CatalogDir, "catalog-dir", "", "Directory of message catalogs named <logger>.toml or .yaml (overrides config)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "jsonlog - emit stdin lines as JSON log events\n\n")
		fmt.Fprintf(stderr, "Usage: jsonlog [options] < input\n\n")
		fmt.Fprintf(stderr, "Lines may start with a level, e.g. \"[WARNING] disk almost full\".\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(stderr, "  JSON_LOGGING_HAZELCAST_LEVEL     Threshold (default INFO)\n")
		fmt.Fprintf(stderr, "  JSON_LOGGING_HAZELCAST_<KEY>     Any config key, e.g. _PRODUCT_ID\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return fc, nil
}
