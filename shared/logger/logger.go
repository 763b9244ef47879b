// Package logger builds the process-wide zap logger from a textual level.
package logger

import (
	"fmt"
	"strings"

	"record-service/shared/utils/errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const DefaultLevel = "info"

type namedLevel struct {
	name  string
	level zapcore.Level
}

// npm-style level names, most severe first. zap has nothing below debug,
// so the verbose names all enable debug output.
var levels = []namedLevel{
	{"error", zapcore.ErrorLevel},
	{"warn", zapcore.WarnLevel},
	{"info", zapcore.InfoLevel},
	{"http", zapcore.DebugLevel},
	{"verbose", zapcore.DebugLevel},
	{"debug", zapcore.DebugLevel},
	{"silly", zapcore.DebugLevel},
}

// Levels lists the recognized level names, most severe first.
func Levels() []string {
	names := make([]string, 0, len(levels))
	for _, l := range levels {
		names = append(names, l.name)
	}
	return names
}

func parse(level string) (zapcore.Level, bool) {
	for _, l := range levels {
		if l.name == level {
			return l.level, true
		}
	}
	return zapcore.InfoLevel, false
}

// LevelError reports an unrecognized LOG_LEVEL; it matches
// xerrors.ErrInvalidLogLevel under errors.Is.
type LevelError struct {
	Level string
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("Invalid LOG_LEVEL: %s. Valid values are %s", e.Level, strings.Join(Levels(), ", "))
}

func (e *LevelError) Unwrap() error { return xerrors.ErrInvalidLogLevel }

func ValidateLevel(level string) error {
	if _, ok := parse(level); !ok {
		return &LevelError{Level: level}
	}
	return nil
}

// New returns a production (JSON, stderr) logger at the given level.
// An empty level means DefaultLevel.
func New(level string) (*zap.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, ok := parse(level)
	if !ok {
		return nil, ValidateLevel(level)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
