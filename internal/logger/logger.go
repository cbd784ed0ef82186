// Package logger provides process-wide logging for moviematch.
//
// Messages go through a zerolog logger. The default level is warn; when
// verbose mode is enabled via the --verbose flag, debug messages are
// emitted too so users can follow the recommendation pipeline. A log file,
// when configured, is rotated with lumberjack.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum level: debug, info, warn or error.
	// Default: warn
	Level string

	// Format is console or json. Files are always written as json.
	// Default: console
	Format string

	// File, when set, receives output with rotation instead of Output.
	File string

	// Output is the writer for log output.
	// Default: os.Stderr
	Output io.Writer
}

var (
	mu      sync.RWMutex
	verbose bool
	level             = zerolog.WarnLevel
	format            = FormatConsole
	output  io.Writer = os.Stderr
	rotator *lumberjack.Logger
	log     zerolog.Logger
)

func init() {
	rebuild()
}

// Init configures the global logger. It is safe to call more than once.
func Init(cfg Config) error {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	closeRotator()

	level = lvl
	format = cfg.Format
	if format == "" {
		format = FormatConsole
	}
	output = cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.File != "" {
		rotator = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // Megabytes
			MaxBackups: 3,
			MaxAge:     28, // Days
		}
		output = rotator
		format = FormatJSON
	}

	rebuild()
	return nil
}

// Close flushes and closes the log file, if any, and reverts to stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	err := closeRotator()
	output = os.Stderr
	rebuild()
	return err
}

// ParseLevel converts a level name to a zerolog level.
// An empty name yields warn.
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return zerolog.WarnLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	rebuild()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// ToFile reports whether output goes to a rotated log file.
func ToFile() bool {
	mu.RLock()
	defer mu.RUnlock()
	return rotator != nil
}

// SetOutput sets the output writer.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeRotator()
	output = w
	rebuild()
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug().Msgf(format, args...)
}

// Section logs a pipeline stage header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug().Str("section", name).Msg("=== " + name + " ===")
}

// Info logs an informational message.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Info().Msgf(format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warn().Msgf(format, args...)
}

// Error logs err with a message.
func Error(err error, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Error().Err(err).Msgf(format, args...)
}

// rebuild recreates the logger from the current settings (mu held).
func rebuild() {
	lvl := level
	if verbose {
		lvl = zerolog.DebugLevel
	}

	w := output
	if format == FormatConsole {
		w = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
			NoColor:    !isTerminal(output),
		}
	}

	log = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// closeRotator closes the current log file (mu held).
func closeRotator() error {
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
