package formatter

import (
	"bytes"
	"sync"
	"time"

	"github.com/philipp01105/logshim/core"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes without a trailing newline
	Format(entry *core.Entry) ([]byte, error)
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead. On error the buffer is left as it was before
// the call.
type BufferFormatter interface {
	FormatEntry(entry *core.Entry, buf *bytes.Buffer) error
}

// TimeFormat selects how the JSON formatter renders the record time.
type TimeFormat string

const (
	// TimeSeconds renders fractional seconds since the Unix epoch as a number.
	TimeSeconds TimeFormat = "seconds"
	// TimeISO8601 renders local time with millisecond precision and a
	// numeric UTC offset, e.g. 2026-01-15T12:00:00.123+0100.
	TimeISO8601 TimeFormat = "iso8601"
)

// ISO8601Layout is the layout used for TimeISO8601.
const ISO8601Layout = "2006-01-02T15:04:05.000-0700"

// ColorMode controls ANSI coloring of text output.
type ColorMode string

const (
	// ColorAuto colors output only when the destination is a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways forces colors.
	ColorAlways ColorMode = "always"
	// ColorNever disables colors.
	ColorNever ColorMode = "never"
)

// Config holds common formatter configuration
type Config struct {
	// TimeFormat selects the JSON time representation (default: TimeSeconds)
	TimeFormat TimeFormat
	// Location is used for TimeISO8601 (default: time.Local)
	Location *time.Location
	// Colorize wraps text output in ANSI color codes
	Colorize bool
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// formatWith runs fn on a pooled buffer and returns a copy of the result.
func formatWith(entry *core.Entry, fn func(*core.Entry, *bytes.Buffer) error) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := fn(entry, buf); err != nil {
		return nil, err
	}

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}
