package formatter

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/philipp01105/logshim/core"
)

// Keys written ahead of the entry's own fields.
const (
	LevelKey  = "level"
	TimeKey   = "time"
	CallerKey = "caller"
	MsgKey    = "msg"
)

var requiredKeys = [...]string{LevelKey, TimeKey, CallerKey, MsgKey}

// JSONFormatter formats log entries as single-line JSON objects
type JSONFormatter struct {
	Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg Config) *JSONFormatter {
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = TimeSeconds
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &JSONFormatter{Config: cfg}
}

// Format formats an entry as JSON
func (f *JSONFormatter) Format(entry *core.Entry) ([]byte, error) {
	return formatWith(entry, f.FormatEntry)
}

// FormatEntry formats an entry as JSON into the given buffer (implements BufferFormatter).
func (f *JSONFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) error {
	level, err := levelName(entry.Level)
	if err != nil {
		return err
	}

	start := buf.Len()
	if err := f.formatJSONToBuffer(entry, level, buf); err != nil {
		buf.Truncate(start)
		return err
	}
	return nil
}

func (f *JSONFormatter) formatJSONToBuffer(entry *core.Entry, level string, buf *bytes.Buffer) error {
	buf.WriteByte('{')

	for i, key := range requiredKeys {
		if i > 0 {
			buf.WriteByte(',')
		}
		appendKey(buf, key)

		// A field with the same key overrides the value but not the position.
		if j := lastIndex(entry.Fields, key, 0); j >= 0 {
			if err := appendJSONFieldValue(buf, entry.Fields[j]); err != nil {
				return err
			}
			continue
		}

		switch key {
		case LevelKey:
			appendQuoted(buf, level)
		case TimeKey:
			f.appendTime(buf, entry.Time)
		case CallerKey:
			appendQuoted(buf, entry.Caller.Location())
		case MsgKey:
			appendQuoted(buf, entry.Message)
		}
	}

	for i, field := range entry.Fields {
		if isRequiredKey(field.Key) || lastIndex(entry.Fields[:i], field.Key, 0) >= 0 {
			continue
		}
		buf.WriteByte(',')
		appendKey(buf, field.Key)
		last := entry.Fields[lastIndex(entry.Fields, field.Key, i)]
		if err := appendJSONFieldValue(buf, last); err != nil {
			return err
		}
	}

	buf.WriteByte('}')
	return nil
}

func (f *JSONFormatter) appendTime(buf *bytes.Buffer, t time.Time) {
	if f.TimeFormat == TimeISO8601 {
		buf.WriteByte('"')
		buf.Write(t.In(f.Location).AppendFormat(buf.AvailableBuffer(), ISO8601Layout))
		buf.WriteByte('"')
		return
	}
	secs := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), secs, 'f', -1, 64))
}

// lastIndex returns the index of the last field at or after from whose key
// is key, or -1.
func lastIndex(fields []core.Field, key string, from int) int {
	for j := len(fields) - 1; j >= from; j-- {
		if fields[j].Key == key {
			return j
		}
	}
	return -1
}

func isRequiredKey(key string) bool {
	for _, k := range requiredKeys {
		if k == key {
			return true
		}
	}
	return false
}

func appendKey(buf *bytes.Buffer, key string) {
	appendQuoted(buf, key)
	buf.WriteByte(':')
}

func appendQuoted(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	appendJSONString(buf, s)
	buf.WriteByte('"')
}

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer.
// Invalid UTF-8 bytes are replaced with \ufffd.
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				if start < i {
					buf.WriteString(s[start:i])
				}
				buf.WriteString(`\ufffd`)
				i++
				start = i
				continue
			}
			i += size
			continue
		}
		if c >= 0x20 && c != '"' && c != '\\' {
			i++
			continue
		}
		// Flush unescaped prefix
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		i++
		start = i
	}
	// Flush remaining
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// appendJSONFieldValue writes a JSON-encoded field value to the buffer
func appendJSONFieldValue(buf *bytes.Buffer, field core.Field) error {
	switch field.Type {
	case core.StringType, core.ErrorType:
		appendQuoted(buf, field.Str)
	case core.IntType, core.Int64Type:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), field.Int64, 10))
	case core.Float64Type:
		appendFloat(buf, field.Float64)
	case core.BoolType:
		buf.Write(strconv.AppendBool(buf.AvailableBuffer(), field.Int64 == 1))
	case core.TimeType:
		buf.WriteByte('"')
		buf.Write(time.Unix(0, field.Int64).AppendFormat(buf.AvailableBuffer(), time.RFC3339Nano))
		buf.WriteByte('"')
	case core.DurationType:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), field.Int64, 10))
	case core.AnyType:
		return appendAny(buf, field)
	default:
		appendQuoted(buf, field.StringValue())
	}
	return nil
}

// appendFloat writes NaN and infinities as null, which JSON cannot express.
func appendFloat(buf *bytes.Buffer, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		buf.WriteString("null")
		return
	}
	buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), v, 'f', -1, 64))
}

func appendAny(buf *bytes.Buffer, field core.Field) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(field.Any); err != nil {
		return &SerializationError{Key: field.Key, Err: err}
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
