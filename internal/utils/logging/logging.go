// Package logging provides the program logger used across grabarr.
//
// Console output mirrors the familiar tagged style ([Info], [Success], ...),
// while the log file receives structured JSON lines.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"grabarr/internal/domain/consts"

	"github.com/rs/zerolog"
)

const levelSuccess = "success"

// LoggingConfig configures SetupLogging.
type LoggingConfig struct {
	LogFilePath string
	Console     io.Writer
	Program     string
	Level       string
	DebugLevel  int
	NoColor     bool
}

// ProgramLogger writes tagged console lines and JSON file lines.
//
// The zero value discards everything.
type ProgramLogger struct {
	mu      sync.Mutex
	console zerolog.Logger
	file    zerolog.Logger
	handle  *os.File
	level   zerolog.Level
	debug   int
}

// SetupLogging creates the program logger, opening the log file if a path is given.
func SetupLogging(cfg LoggingConfig) (*ProgramLogger, error) {
	if cfg.Console == nil {
		cfg.Console = os.Stdout
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	cw := zerolog.ConsoleWriter{
		Out:          cfg.Console,
		NoColor:      cfg.NoColor,
		PartsExclude: []string{zerolog.TimestampFieldName},
		FormatLevel:  consoleLevel(cfg.NoColor),
	}

	pl := &ProgramLogger{
		console: zerolog.New(cw),
		level:   level,
		debug:   cfg.DebugLevel,
	}
	if level == zerolog.DebugLevel && pl.debug == 0 {
		pl.debug = 1
	}

	if cfg.LogFilePath != "" {
		f, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, consts.PermsLogFile)
		if err != nil {
			return pl, fmt.Errorf("failed to open log file %q: %w", cfg.LogFilePath, err)
		}
		pl.handle = f
		pl.file = zerolog.New(f).With().Timestamp().Str("program", cfg.Program).Logger()
	}
	return pl, nil
}

// ParseLevel maps a user supplied level name onto a zerolog level.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.InfoLevel, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", s)
}

// Close closes the underlying log file, if any.
func (pl *ProgramLogger) Close() error {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	if pl.handle == nil {
		return nil
	}
	err := pl.handle.Close()
	pl.handle = nil
	pl.file = zerolog.Logger{}
	return err
}

// I logs an info message.
func (pl *ProgramLogger) I(format string, args ...any) {
	pl.write(zerolog.InfoLevel, "", format, args...)
}

// S logs a success message.
func (pl *ProgramLogger) S(format string, args ...any) {
	pl.write(zerolog.InfoLevel, levelSuccess, format, args...)
}

// W logs a warning.
func (pl *ProgramLogger) W(format string, args ...any) {
	pl.write(zerolog.WarnLevel, "", format, args...)
}

// E logs an error.
func (pl *ProgramLogger) E(format string, args ...any) {
	pl.write(zerolog.ErrorLevel, "", format, args...)
}

// P prints a plain line with no level tag.
func (pl *ProgramLogger) P(format string, args ...any) {
	if pl == nil || pl.level > zerolog.InfoLevel {
		return
	}
	pl.mu.Lock()
	defer pl.mu.Unlock()

	msg := sprintf(format, args...)
	pl.console.Log().Msg(msg)
	pl.file.Log().Msg(msg)
}

// D logs a debug message if the debug verbosity is at least l.
func (pl *ProgramLogger) D(l int, format string, args ...any) {
	if pl == nil || pl.level > zerolog.DebugLevel || l > pl.debug {
		return
	}
	pl.mu.Lock()
	defer pl.mu.Unlock()

	msg := sprintf(format, args...)
	pl.console.Debug().Caller(1).Msg(msg)
	pl.file.Debug().Caller(1).Int("verbosity", l).Msg(msg)
}

// write emits one line to both sinks.
func (pl *ProgramLogger) write(level zerolog.Level, tag, format string, args ...any) {
	if pl == nil || level < pl.level {
		return
	}
	pl.mu.Lock()
	defer pl.mu.Unlock()

	msg := sprintf(format, args...)
	if tag != "" {
		pl.console.Log().Str(zerolog.LevelFieldName, tag).Msg(msg)
		pl.file.Log().Str(zerolog.LevelFieldName, tag).Msg(msg)
		return
	}
	pl.console.WithLevel(level).Msg(msg)
	pl.file.WithLevel(level).Msg(msg)
}

// consoleLevel renders levels with the program's tags.
func consoleLevel(noColor bool) zerolog.Formatter {
	paint := func(color, tag string) string {
		if noColor {
			return tag
		}
		return color + tag + consts.ColorReset
	}
	return func(i any) string {
		switch i {
		case zerolog.LevelErrorValue, zerolog.LevelFatalValue, zerolog.LevelPanicValue:
			return paint(consts.ColorRed, consts.TagError)
		case zerolog.LevelWarnValue:
			return paint(consts.ColorYellow, consts.TagWarn)
		case zerolog.LevelDebugValue, zerolog.LevelTraceValue:
			return paint(consts.ColorYellow, consts.TagDebug)
		case levelSuccess:
			return paint(consts.ColorGreen, consts.TagSuccess)
		case zerolog.LevelInfoValue:
			return paint(consts.ColorCyan, consts.TagInfo)
		}
		return ""
	}
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
