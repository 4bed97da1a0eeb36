package logger

import (
	"sync"

	"github.com/philipp01105/logshim/core"
	"github.com/philipp01105/logshim/sink"
)

var (
	defaultLogger *Logger
	// pkgLogger is defaultLogger with one more caller frame skipped for
	// the package-level functions below.
	pkgLogger *Logger
	defaultMu sync.RWMutex
)

func init() {
	SetDefault(NewBuilder().
		WithHandler(sink.DefaultHandler()).
		WithLevel(core.DebugLevel).
		WithCaller(true).
		Build())
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	pkg := l.clone()
	pkg.callerSkip++

	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
	pkgLogger = pkg
}

func pkgDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return pkgLogger
}

// Package-level convenience functions using the default logger

// Debug logs a debug message using the default logger
func Debug(msg string, fields ...core.Field) {
	pkgDefault().Debug(msg, fields...)
}

// Info logs an info message using the default logger
func Info(msg string, fields ...core.Field) {
	pkgDefault().Info(msg, fields...)
}

// Warn logs a warning message using the default logger
func Warn(msg string, fields ...core.Field) {
	pkgDefault().Warn(msg, fields...)
}

// Error logs an error message using the default logger
func Error(msg string, fields ...core.Field) {
	pkgDefault().Error(msg, fields...)
}

// Fatal logs a fatal message using the default logger and exits the program
func Fatal(msg string, fields ...core.Field) {
	pkgDefault().Fatal(msg, fields...)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...interface{}) {
	pkgDefault().Infof(format, args...)
}

// Warnf logs a formatted warning message using the default logger
func Warnf(format string, args ...interface{}) {
	pkgDefault().Warnf(format, args...)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...interface{}) {
	pkgDefault().Errorf(format, args...)
}

// Named returns a default logger on the given channel
func Named(channel string) *Logger {
	return Default().Named(channel)
}

// With creates a new logger with additional fields
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}
