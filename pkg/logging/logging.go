package logging

import (
	"fmt"
	"os"
	"strings"

	"glue/pkg/version"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Logger is the global logger instance
var Logger *zap.Logger

// Options configures the diagnostics logger.
type Options struct {
	Debug  bool
	Format string              // "console", "json", or empty to pick by terminal.
	Output zapcore.WriteSyncer // Defaults to stderr.
}

// Setup builds the logger for opts and installs it as the global logger.
// When opts cannot be honored, a default stderr logger is installed and the error returned.
func Setup(opts Options) error {
	logger, err := New(opts)
	if err != nil {
		fallback, fallbackErr := New(Options{Debug: opts.Debug, Output: opts.Output})
		if fallbackErr != nil {
			fallback = zap.NewNop()
		}
		Logger = fallback
		zap.ReplaceGlobals(Logger)
		return err
	}

	Logger = logger
	zap.ReplaceGlobals(Logger)
	return nil
}

// New builds a logger writing diagnostics to opts.Output.
// Console output omits timestamps and colors levels when stderr is a terminal.
func New(opts Options) (*zap.Logger, error) {
	out := opts.Output
	tty := false
	if out == nil {
		out = zapcore.Lock(os.Stderr)
		tty = IsTerminal(os.Stderr)
	}

	format := opts.Format
	if format == "" {
		format = "json"
		if tty {
			format = "console"
		}
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	var encoder zapcore.Encoder
	var fields []zap.Field
	switch format {
	case "console":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		if tty {
			cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		encoder = zapcore.NewConsoleEncoder(cfg)
	case "json":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		fields = append(fields,
			zap.String("appName", "glue"),
			zap.String("appVersion", version.Get().Version))
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	core := zapcore.NewCore(encoder, out, level)
	return zap.New(core, zap.Fields(fields...)), nil
}

// Sync flushes the logger. Syncing a terminal or a pipe fails on some platforms with
// "invalid argument"; that error is dropped.
func Sync(logger *zap.Logger) {
	if logger == nil {
		return
	}
	if !IsTerminal(os.Stderr) && !isRegularFile(os.Stderr) {
		return
	}
	if err := logger.Sync(); err != nil {
		if !strings.Contains(strings.ToLower(err.Error()), "invalid argument") {
			fmt.Fprintf(os.Stderr, "Logger sync failed: %v\n", err)
		}
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false // Assume not a regular file if we can't get the file info
	}
	return fileInfo.Mode().IsRegular()
}
