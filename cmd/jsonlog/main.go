package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/philipp01105/jsonlog/config"
	"github.com/philipp01105/jsonlog/core"
	"github.com/philipp01105/jsonlog/formatter"
	"github.com/philipp01105/jsonlog/handler"
	"github.com/philipp01105/jsonlog/handler/consolehandler"
	"github.com/philipp01105/jsonlog/handler/filehandler"
	"github.com/philipp01105/jsonlog/logger"
)

func main() {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "jsonlog: reading lines from the terminal, end with Ctrl-D")
	}

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fc, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load(fc.ConfigFile)
	if err != nil {
		return err
	}
	applyFlags(cfg, fc)
	if err := cfg.Validate(); err != nil {
		return err
	}

	threshold, err := cfg.Threshold()
	if err != nil {
		return err
	}
	lineLevel, err := core.ParseSeverity(fc.LineLevel)
	if err != nil {
		return fmt.Errorf("line-level: %w", err)
	}

	// Formatting failures go to stderr as JSON, never through the handler
	reporter := formatter.NewZapReporter(zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(stderr),
		zap.ErrorLevel,
	)))

	fmtCfg, err := cfg.Formatter()
	if err != nil {
		return err
	}
	fmtCfg.Reporter = reporter
	f, err := cfg.NewFormatterFrom(fmtCfg)
	if err != nil {
		return err
	}

	h, err := newHandler(cfg, f, stdout, stderr)
	if err != nil {
		return err
	}

	opts := []logger.FactoryOption{
		logger.WithLevelSource(logger.LevelSourceFunc(func(string) (core.Severity, error) {
			return threshold, nil
		})),
		logger.WithOnClose(func() error {
			// Syncing a terminal fails on some platforms
			_ = reporter.Sync()
			return nil
		}),
	}
	// Events carry the logger's catalog so catalog keys get a _MessageID
	if fmtCfg.Registry != nil {
		opts = append(opts, logger.WithCatalogs(fmtCfg.Registry))
	}
	factory := logger.NewFactory(h, opts...)

	log, err := factory.GetLogger(fc.LoggerName)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		level, msg := splitLevel(scanner.Text(), lineLevel)
		log.Log(level, msg, nil)
	}

	closeErr := factory.Close()
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return closeErr
}

func applyFlags(cfg *config.Config, fc *flagConfig) {
	if fc.Level != "" {
		cfg.Level = fc.Level
	}
	if fc.Format != "" {
		cfg.Format = fc.Format
	}
	if fc.Output != "" {
		cfg.Output = fc.Output
	}
	if fc.LogFile != "" {
		cfg.Output = config.OutputFile
		cfg.File.Path = fc.LogFile
	}
	if fc.Source {
		cfg.LogSource = true
	}
	if fc.Records {
		cfg.RecordNumber = true
	}
	if fc.CatalogDir != "" {
		cfg.CatalogDir = fc.CatalogDir
	}
}

func newHandler(cfg *config.Config, f formatter.Formatter, stdout, stderr io.Writer) (handler.Handler, error) {
	switch cfg.Output {
	case config.OutputFile:
		return filehandler.NewFileHandler(filehandler.FileConfig{
			Filename:   cfg.File.Path,
			Formatter:  f,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		})
	case config.OutputStderr:
		return consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{Writer: stderr, Formatter: f}), nil
	default:
		return consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{Writer: stdout, Formatter: f}), nil
	}
}

// splitLevel strips a leading "[LEVEL]" from line. Lines without a
// recognised prefix keep def as their level.
func splitLevel(line string, def core.Severity) (core.Severity, string) {
	if !strings.HasPrefix(line, "[") {
		return def, line
	}
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return def, line
	}
	level, err := core.ParseSeverity(line[1:end])
	if err != nil {
		return def, line
	}
	return level, strings.TrimSpace(line[end+1:])
}
