package core

import (
	"errors"
	"strings"
)

// ErrUnknownSeverity is returned when a Level has no name mapping.
var ErrUnknownSeverity = errors.New("unknown severity")

// Level represents the severity level of a log entry
type Level int8

const (
	// DebugLevel for detailed debugging information
	DebugLevel Level = iota
	// InfoLevel for general informational messages
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
	// FatalLevel for critical messages
	FatalLevel
)

// Name returns the lowercase wire token of the level.
func (l Level) Name() (string, error) {
	switch l {
	case DebugLevel:
		return "debug", nil
	case InfoLevel:
		return "info", nil
	case WarnLevel:
		return "warn", nil
	case ErrorLevel:
		return "error", nil
	case FatalLevel:
		return "fatal", nil
	default:
		return "", ErrUnknownSeverity
	}
}

// String returns the upper-case label of the level
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether l is one of the defined ranks.
func (l Level) Valid() bool {
	return l >= DebugLevel && l <= FatalLevel
}

// ParseLevel converts a level name to a Level. Both the wire tokens and
// the common aliases ("warning", "critical") are accepted.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal", "critical":
		return FatalLevel, nil
	default:
		return InfoLevel, ErrUnknownSeverity
	}
}
