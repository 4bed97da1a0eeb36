package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/philipp01105/logshim/core"
	"github.com/philipp01105/logshim/handler"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

// ErrorHandler receives errors returned by the handler for a record that
// was dropped.
type ErrorHandler func(err error)

// stderrErrorHandler reports dropped records on stderr.
func stderrErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "logshim: dropped record: %v\n", err)
}

// Logger is the main logging interface (immutable)
type Logger struct {
	handler       handler.Handler
	level         core.Level
	channel       string
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	onError       ErrorHandler
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handler       handler.Handler
	level         core.Level
	channel       string
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	onError       ErrorHandler
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:      core.DebugLevel, // the handler decides by default
		callerSkip: 2,               // log -> Info -> caller
		onError:    stderrErrorHandler,
	}
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	return b
}

// WithLevel sets the minimum level checked before the handler is consulted
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithChannel sets the logical channel name of the logger
func (b *Builder) WithChannel(channel string) *Builder {
	b.channel = channel
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithCallerSkip skips additional stack frames when capturing the caller,
// for wrappers around Logger.
func (b *Builder) WithCallerSkip(skip int) *Builder {
	b.callerSkip += skip
	return b
}

// WithErrorHandler replaces the default stderr reporting of dropped records.
func (b *Builder) WithErrorHandler(fn ErrorHandler) *Builder {
	if fn != nil {
		b.onError = fn
	}
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	return &Logger{
		handler:       b.handler,
		level:         b.level,
		channel:       b.channel,
		fields:        b.fields,
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
		onError:       b.onError,
	}
}

func (l *Logger) clone() *Logger {
	c := *l
	return &c
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	c := l.clone()
	c.fields = newFields
	return c
}

// Named creates a new Logger on a child channel. Names are joined with a
// dot, so Named("db") on channel "app" logs on "app.db".
func (l *Logger) Named(name string) *Logger {
	c := l.clone()
	switch {
	case name == "":
	case c.channel == "":
		c.channel = name
	default:
		c.channel = c.channel + "." + name
	}
	return c
}

// Channel returns the logger's channel name
func (l *Logger) Channel() string {
	return l.channel
}

// Enabled reports whether a record at level would be written
func (l *Logger) Enabled(level core.Level) bool {
	return level >= l.level && l.handler != nil && handler.Enabled(l.handler, l.channel, level)
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	l.log(level, msg, fields)
}

// log is the internal logging method that takes a pre-allocated slice
func (l *Logger) log(level core.Level, msg string, fields []core.Field) {
	if !level.Valid() {
		l.onError(errors.Wrapf(core.ErrUnknownSeverity, "logger: level %d", level))
		return
	}
	// Level check optimization - exit early BEFORE any allocations
	if level < l.level || l.handler == nil {
		return
	}
	if !handler.Enabled(l.handler, l.channel, level) {
		return
	}

	entry := core.GetEntry()
	entry.Time = time.Now()
	entry.Level = level
	entry.Channel = l.channel
	entry.Message = msg

	// Add logger's default fields
	if len(l.fields) > 0 {
		entry.Fields = append(entry.Fields, l.fields...)
	}

	// Add provided fields
	if len(fields) > 0 {
		entry.Fields = append(entry.Fields, fields...)
	}

	if l.includeCaller {
		entry.Caller = core.GetCaller(l.callerSkip)
	}

	if err := l.handler.Handle(entry); err != nil {
		l.onError(err)
	}
	core.PutEntry(entry)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	l.log(core.DebugLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	l.log(core.InfoLevel, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	l.log(core.WarnLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	l.log(core.ErrorLevel, msg, fields)
}

// Fatal logs a fatal message and exits the program with os.Exit(1)
func (l *Logger) Fatal(msg string, fields ...core.Field) {
	l.log(core.FatalLevel, msg, fields)
	osExit(1)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Fatalf logs a fatal message with formatting and exits the program with os.Exit(1)
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(core.FatalLevel, fmt.Sprintf(format, args...), nil)
	osExit(1)
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
