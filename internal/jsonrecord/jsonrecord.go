// Package jsonrecord converts values of already-encoded JSON log records
// back into core types. It is shared by the zerolog bridge and the pretty
// printer.
package jsonrecord

import (
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fastjson"

	"github.com/philipp01105/logshim/core"
	"github.com/philipp01105/logshim/formatter"
)

// Raw keeps a nested object or array exactly as it was encoded.
type Raw []byte

func (r Raw) MarshalJSON() ([]byte, error) { return r, nil }
func (r Raw) String() string               { return string(r) }

// Field converts a decoded JSON value to a field. Integral numbers become
// Int64Type; nested values are kept as Raw.
func Field(key string, v *fastjson.Value) core.Field {
	switch v.Type() {
	case fastjson.TypeString:
		return core.Field{Key: key, Type: core.StringType, Str: string(v.GetStringBytes())}
	case fastjson.TypeNumber:
		if n, err := v.Int64(); err == nil {
			return core.Field{Key: key, Type: core.Int64Type, Int64: n}
		}
		return core.Field{Key: key, Type: core.Float64Type, Float64: v.GetFloat64()}
	case fastjson.TypeTrue:
		return core.FieldOf(key, true)
	case fastjson.TypeFalse:
		return core.FieldOf(key, false)
	case fastjson.TypeNull:
		return core.Field{Key: key, Type: core.AnyType}
	default:
		return core.Field{Key: key, Type: core.AnyType, Any: Raw(v.MarshalTo(nil))}
	}
}

// Time accepts Unix seconds, RFC 3339 strings and the ISO 8601 layout of
// the JSON formatter.
func Time(v *fastjson.Value) (time.Time, bool) {
	switch v.Type() {
	case fastjson.TypeNumber:
		f := v.GetFloat64()
		sec := int64(f)
		return time.Unix(sec, int64((f-float64(sec))*1e9)), true
	case fastjson.TypeString:
		s := string(v.GetStringBytes())
		for _, layout := range [...]string{time.RFC3339Nano, formatter.ISO8601Layout} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// Caller splits a "file:line" location.
func Caller(s string) core.CallerInfo {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return core.CallerInfo{}
	}
	line, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return core.CallerInfo{}
	}
	return core.CallerInfo{File: s[:i], Line: line, Defined: true}
}
