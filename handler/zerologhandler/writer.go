package zerologhandler

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/valyala/fastjson"

	"github.com/philipp01105/logshim/core"
	"github.com/philipp01105/logshim/handler"
	"github.com/philipp01105/logshim/internal/jsonrecord"
)

// ChannelKey is the event field that overrides the writer's channel.
const ChannelKey = "channel"

// Writer implements zerolog.LevelWriter on top of a handler.Handler.
type Writer struct {
	handler handler.Handler
	channel string
	parsers fastjson.ParserPool
}

var _ zerolog.LevelWriter = (*Writer)(nil)

// NewWriter creates a Writer that logs on channel through h.
func NewWriter(h handler.Handler, channel string) *Writer {
	return &Writer{handler: h, channel: channel}
}

// NewLogger returns a zerolog.Logger with timestamps and caller that
// writes through h.
func NewLogger(h handler.Handler, channel string) zerolog.Logger {
	return zerolog.New(NewWriter(h, channel)).With().Timestamp().Caller().Logger()
}

// Write handles an event without a known level; the level is read from
// the event itself.
func (w *Writer) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

// WriteLevel converts one zerolog event. Events on suppressed channels
// are accepted and discarded.
func (w *Writer) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	parser := w.parsers.Get()
	defer w.parsers.Put(parser)

	v, err := parser.ParseBytes(p)
	if err != nil {
		return 0, errors.Wrap(err, "zerologhandler: parse event")
	}
	obj, err := v.Object()
	if err != nil {
		return 0, errors.Wrap(err, "zerologhandler: event is not an object")
	}

	if level == zerolog.NoLevel {
		level, _ = zerolog.ParseLevel(string(obj.Get(zerolog.LevelFieldName).GetStringBytes()))
	}
	channel := w.channel
	if name := obj.Get(ChannelKey).GetStringBytes(); name != nil {
		channel = string(name)
	}
	lvl := zerologLevelToCore(level)
	if !handler.Enabled(w.handler, channel, lvl) {
		return len(p), nil
	}

	entry := core.GetEntry()
	defer core.PutEntry(entry)

	entry.Level = lvl
	entry.Channel = channel
	obj.Visit(func(key []byte, v *fastjson.Value) {
		switch k := string(key); k {
		case zerolog.LevelFieldName, ChannelKey:
		case zerolog.MessageFieldName:
			entry.Message = string(v.GetStringBytes())
		case zerolog.TimestampFieldName:
			if t, ok := jsonrecord.Time(v); ok {
				entry.Time = t
			}
		case zerolog.CallerFieldName:
			entry.Caller = jsonrecord.Caller(string(v.GetStringBytes()))
		default:
			entry.Fields = append(entry.Fields, jsonrecord.Field(k, v))
		}
	})

	if err := w.handler.Handle(entry); err != nil {
		return 0, err
	}
	return len(p), nil
}

func zerologLevelToCore(level zerolog.Level) core.Level {
	switch level {
	case zerolog.PanicLevel, zerolog.FatalLevel:
		return core.FatalLevel
	case zerolog.ErrorLevel:
		return core.ErrorLevel
	case zerolog.WarnLevel:
		return core.WarnLevel
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return core.DebugLevel
	default:
		return core.InfoLevel
	}
}
