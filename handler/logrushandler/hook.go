package logrushandler

import (
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/philipp01105/logshim/core"
	"github.com/philipp01105/logshim/handler"
)

// ChannelKey is the data field that overrides the hook's channel.
const ChannelKey = "channel"

// Hook is a logrus.Hook that forwards entries to a handler.Handler.
type Hook struct {
	handler handler.Handler
	channel string
}

var _ logrus.Hook = (*Hook)(nil)

// NewHook creates a hook that logs on channel through h.
func NewHook(h handler.Handler, channel string) *Hook {
	return &Hook{handler: h, channel: channel}
}

// NewLogger returns a logrus.Logger whose only output is the hook.
func NewLogger(h handler.Handler, channel string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.TraceLevel)
	l.AddHook(NewHook(h, channel))
	return l
}

// Levels returns every logrus level; filtering happens in the handler.
func (h *Hook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire converts the entry and hands it to the wrapped handler.
func (h *Hook) Fire(e *logrus.Entry) error {
	channel := h.channel
	if name, ok := e.Data[ChannelKey].(string); ok {
		channel = name
	}
	level := logrusLevelToCore(e.Level)
	if !handler.Enabled(h.handler, channel, level) {
		return nil
	}

	entry := core.GetEntry()
	defer core.PutEntry(entry)

	entry.Time = e.Time
	entry.Level = level
	entry.Channel = channel
	entry.Message = e.Message
	if e.Caller != nil {
		entry.Caller = core.CallerInfo{
			File:     e.Caller.File,
			Line:     e.Caller.Line,
			Function: e.Caller.Function,
			Defined:  true,
		}
	}

	// logrus.Fields is a map; sort for stable output.
	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		if k != ChannelKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		entry.Fields = append(entry.Fields, core.FieldOf(k, e.Data[k]))
	}

	return h.handler.Handle(entry)
}

func logrusLevelToCore(level logrus.Level) core.Level {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return core.FatalLevel
	case logrus.ErrorLevel:
		return core.ErrorLevel
	case logrus.WarnLevel:
		return core.WarnLevel
	case logrus.InfoLevel:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}
