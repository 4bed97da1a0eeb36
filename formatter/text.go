package formatter

import (
	"bytes"
	"strconv"

	"github.com/philipp01105/logshim/core"
)

// ANSI escape sequences used by the text template.
const (
	ansiReset = "\x1b[0m"
	ansiCyan  = "\x1b[36m"
)

// levelColors mirrors the usual console palette: debug blue, info bold,
// warn yellow, error red, fatal on a red background.
var levelColors = [...]string{
	core.DebugLevel: "\x1b[34m\x1b[1m",
	core.InfoLevel:  "\x1b[1m",
	core.WarnLevel:  "\x1b[33m\x1b[1m",
	core.ErrorLevel: "\x1b[31m\x1b[1m",
	core.FatalLevel: "\x1b[41m\x1b[1m",
}

// levelPadded holds the level labels left-aligned to width 8.
var levelPadded = [...]string{
	core.DebugLevel: "DEBUG   ",
	core.InfoLevel:  "INFO    ",
	core.WarnLevel:  "WARN    ",
	core.ErrorLevel: "ERROR   ",
	core.FatalLevel: "FATAL   ",
}

// TextFormatter formats log entries as human-readable text
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	return &TextFormatter{Config: cfg}
}

// Format formats an entry as text
func (f *TextFormatter) Format(entry *core.Entry) ([]byte, error) {
	return formatWith(entry, f.FormatEntry)
}

// FormatEntry writes the formatted entry into the given buffer (implements BufferFormatter).
func (f *TextFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) error {
	color := ""
	if f.Colorize && entry.Level.Valid() {
		color = levelColors[entry.Level]
	}

	// <level> | <name>:<function>:<line>
	f.open(buf, color)
	if entry.Level.Valid() {
		buf.WriteString(levelPadded[entry.Level])
	} else {
		buf.WriteString("UNKNOWN ")
	}
	f.close(buf, color)
	buf.WriteString(" | ")

	cyan := ""
	if f.Colorize {
		cyan = ansiCyan
	}
	f.open(buf, cyan)
	buf.WriteString(channelName(entry))
	f.close(buf, cyan)
	buf.WriteByte(':')
	f.open(buf, cyan)
	buf.WriteString(funcName(entry.Caller))
	f.close(buf, cyan)
	buf.WriteByte(':')
	f.open(buf, cyan)
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Caller.Line), 10))
	f.close(buf, cyan)

	// - <message> - <extras>
	buf.WriteString(" - ")
	f.open(buf, color)
	appendSingleLine(buf, entry.Message)
	f.close(buf, color)
	buf.WriteString(" - ")
	f.open(buf, color)
	appendExtras(buf, entry.Fields)
	f.close(buf, color)
	return nil
}

func (f *TextFormatter) open(buf *bytes.Buffer, color string) {
	if color != "" {
		buf.WriteString(color)
	}
}

func (f *TextFormatter) close(buf *bytes.Buffer, color string) {
	if color != "" {
		buf.WriteString(ansiReset)
	}
}

// channelName falls back to the caller's package when the entry was not
// logged on a named channel.
func channelName(entry *core.Entry) string {
	if entry.Channel != "" {
		return entry.Channel
	}
	if pkg := entry.Caller.Package(); pkg != "" {
		return pkg
	}
	return "?"
}

func funcName(c core.CallerInfo) string {
	if fn := c.FuncName(); fn != "" {
		return fn
	}
	return "?"
}

// appendExtras renders fields as {k1=v1, k2=v2}.
func appendExtras(buf *bytes.Buffer, fields []core.Field) {
	buf.WriteByte('{')
	for i, field := range fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		appendSingleLine(buf, field.Key)
		buf.WriteByte('=')
		appendSingleLine(buf, field.StringValue())
	}
	buf.WriteByte('}')
}

// appendSingleLine writes s with CR and LF escaped so a record never spans
// more than one line.
func appendSingleLine(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		var esc string
		switch s[i] {
		case '\n':
			esc = `\n`
		case '\r':
			esc = `\r`
		default:
			continue
		}
		buf.WriteString(s[start:i])
		buf.WriteString(esc)
		start = i + 1
	}
	buf.WriteString(s[start:])
}
