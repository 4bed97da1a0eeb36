package handler

import (
	"github.com/philipp01105/logshim/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log entry. The entry may be recycled by the
	// caller once Handle returns.
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// LevelEnabler is an optional interface for handlers that filter by
// channel and level. Producers call it before building an entry.
type LevelEnabler interface {
	Enabled(channel string, level core.Level) bool
}

// StatsProvider is implemented by handlers that expose counters.
type StatsProvider interface {
	Stats() Snapshot
}

// Enabled reports whether h would accept a record at level on channel.
// Handlers that do not implement LevelEnabler accept everything.
func Enabled(h Handler, channel string, level core.Level) bool {
	if le, ok := h.(LevelEnabler); ok {
		return le.Enabled(channel, level)
	}
	return true
}

// StatsOf returns the counters of h when it implements StatsProvider.
func StatsOf(h Handler) (Snapshot, bool) {
	if sp, ok := h.(StatsProvider); ok {
		return sp.Stats(), true
	}
	return Snapshot{}, false
}
