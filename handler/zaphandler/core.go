package zaphandler

import (
	"math"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/logshim/core"
	"github.com/philipp01105/logshim/handler"
)

// Core implements zapcore.Core on top of a handler.Handler.
type Core struct {
	handler handler.Handler
	channel string
	fields  []core.Field
}

var _ zapcore.Core = (*Core)(nil)

// NewCore creates a zapcore.Core that logs on channel through h.
func NewCore(h handler.Handler, channel string) *Core {
	return &Core{handler: h, channel: channel}
}

// Enabled reports whether the root channel accepts level.
func (c *Core) Enabled(level zapcore.Level) bool {
	return handler.Enabled(c.handler, c.channel, zapLevelToCore(level))
}

// With returns a Core that adds fields to every entry.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = appendFields(make([]core.Field, 0, len(c.fields)+len(fields)), c.fields, fields)
	return &clone
}

// Check adds c to ce when the entry's channel accepts its level.
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if handler.Enabled(c.handler, c.channelFor(ent), zapLevelToCore(ent.Level)) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts the entry and hands it to the wrapped handler.
func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	entry := core.GetEntry()
	defer core.PutEntry(entry)

	entry.Time = ent.Time
	entry.Level = zapLevelToCore(ent.Level)
	entry.Channel = c.channelFor(ent)
	entry.Message = ent.Message
	if ent.Caller.Defined {
		entry.Caller = core.CallerInfo{
			File:     ent.Caller.File,
			Line:     ent.Caller.Line,
			Function: ent.Caller.Function,
			Defined:  true,
		}
	}
	entry.Fields = appendFields(entry.Fields, c.fields, fields)

	return c.handler.Handle(entry)
}

// Sync is a no-op; console sinks write each record immediately.
func (c *Core) Sync() error {
	return nil
}

func (c *Core) channelFor(ent zapcore.Entry) string {
	switch {
	case ent.LoggerName == "":
		return c.channel
	case c.channel == "":
		return ent.LoggerName
	default:
		return c.channel + "." + ent.LoggerName
	}
}

func zapLevelToCore(level zapcore.Level) core.Level {
	switch {
	case level >= zapcore.DPanicLevel:
		return core.FatalLevel
	case level >= zapcore.ErrorLevel:
		return core.ErrorLevel
	case level >= zapcore.WarnLevel:
		return core.WarnLevel
	case level >= zapcore.InfoLevel:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

func appendFields(dst, base []core.Field, fields []zapcore.Field) []core.Field {
	dst = append(dst, base...)
	for _, f := range fields {
		dst = appendField(dst, f)
	}
	return dst
}

// appendField converts a zap field. Scalar types map directly; everything
// else goes through a map encoder and keeps zap's own representation.
func appendField(dst []core.Field, f zapcore.Field) []core.Field {
	switch f.Type {
	case zapcore.SkipType:
		return dst
	case zapcore.StringType:
		return append(dst, core.Field{Key: f.Key, Type: core.StringType, Str: f.String})
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		return append(dst, core.Field{Key: f.Key, Type: core.Int64Type, Int64: f.Integer})
	case zapcore.Float64Type:
		return append(dst, core.Field{Key: f.Key, Type: core.Float64Type, Float64: math.Float64frombits(uint64(f.Integer))})
	case zapcore.BoolType:
		return append(dst, core.FieldOf(f.Key, f.Integer == 1))
	case zapcore.DurationType:
		return append(dst, core.Field{Key: f.Key, Type: core.DurationType, Int64: f.Integer})
	case zapcore.TimeFullType:
		if t, ok := f.Interface.(time.Time); ok {
			return append(dst, core.FieldOf(f.Key, t))
		}
	case zapcore.ErrorType:
		if err, ok := f.Interface.(error); ok {
			return append(dst, core.Field{Key: f.Key, Type: core.ErrorType, Str: err.Error()})
		}
	}

	enc := zapcore.NewMapObjectEncoder()
	f.AddTo(enc)
	if v, ok := enc.Fields[f.Key]; ok {
		return append(dst, core.FieldOf(f.Key, v))
	}
	return dst
}
