package sink

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/philipp01105/logshim/core"
	"github.com/philipp01105/logshim/formatter"
	"github.com/philipp01105/logshim/handler"
	"github.com/philipp01105/logshim/handler/consolehandler"
)

// ErrNotConfigured is returned by Handle before the first Configure call
// or after Close.
var ErrNotConfigured = errors.New("sink: no sink configured")

// suppressedChannels are third-party channels that only ever log fatal
// records.
var suppressedChannels = [...]string{"boto3", "botocore", "s3transfer", "urllib3"}

var _ handler.StatsProvider = (*Configurator)(nil)

// Configurator holds the single active output sink.
type Configurator struct {
	mu       sync.Mutex // serializes Configure and Close
	active   atomic.Pointer[consolehandler.ConsoleHandler]
	channels map[string]core.Level
	stats    *handler.Stats
}

// New creates a Configurator with third-party channel suppression in place
// and no active sink.
func New() *Configurator {
	c := &Configurator{
		channels: make(map[string]core.Level, len(suppressedChannels)),
		stats:    handler.NewStats(),
	}
	for _, name := range suppressedChannels {
		c.channels[name] = core.FatalLevel
	}
	return c
}

// Configure replaces the active sink. On error the previous sink stays
// active.
func (c *Configurator) Configure(opts ...Option) error {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.Validate(); err != nil {
		return errors.Wrap(err, "sink: invalid options")
	}

	next := build(s)

	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.active.Swap(next)
	if prev == nil {
		return nil
	}
	return errors.Wrap(c.retire(prev), "sink: closing previous sink")
}

// retire closes h and keeps its counters. Callers hold c.mu.
func (c *Configurator) retire(h *consolehandler.ConsoleHandler) error {
	err := h.Close()
	c.stats.Merge(h.Stats())
	return err
}

// build creates the console handler described by s.
func build(s settings) *consolehandler.ConsoleHandler {
	if s.JSONFormat {
		return consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
			Writer:    s.Stdout,
			Formatter: formatter.NewJSONFormatter(formatter.Config{TimeFormat: s.TimeFormat}),
			MinLevel:  core.InfoLevel,
		})
	}

	w, colorize := colorOutput(s.Stderr, s.Color)
	return consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    w,
		Formatter: formatter.NewTextFormatter(formatter.Config{Colorize: colorize}),
		MinLevel:  core.DebugLevel,
	})
}

// channelThreshold returns the minimum level for channel. Dotted children
// inherit from their closest configured parent.
func (c *Configurator) channelThreshold(channel string) (core.Level, bool) {
	for name := channel; name != ""; {
		if l, ok := c.channels[name]; ok {
			return l, true
		}
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			break
		}
		name = name[:i]
	}
	return core.DebugLevel, false
}

func (c *Configurator) channelEnabled(channel string, level core.Level) bool {
	threshold, ok := c.channelThreshold(channel)
	return !ok || level >= threshold
}

// Enabled reports whether a record at level on channel would be written.
// Unknown levels are enabled so that Handle reports them.
func (c *Configurator) Enabled(channel string, level core.Level) bool {
	if !level.Valid() {
		return true
	}
	if !c.channelEnabled(channel, level) {
		return false
	}
	h := c.active.Load()
	return h != nil && h.Enabled(channel, level)
}

// Handle routes the entry to the active sink.
func (c *Configurator) Handle(entry *core.Entry) error {
	if !entry.Level.Valid() {
		c.stats.IncrementFailed()
		return errors.Wrapf(core.ErrUnknownSeverity, "sink: level %d", entry.Level)
	}
	if !c.channelEnabled(entry.Channel, entry.Level) {
		c.stats.IncrementFiltered(entry.Level)
		return nil
	}

	h := c.active.Load()
	if h == nil {
		return ErrNotConfigured
	}
	err := h.Handle(entry)
	if errors.Is(err, consolehandler.ErrClosed) {
		// Reconfigured while this entry was in flight.
		if next := c.active.Load(); next != nil && next != h {
			return next.Handle(entry)
		}
		return ErrNotConfigured
	}
	return err
}

// Stats merges the channel filter counters and those of retired sinks with
// the counters of the active sink.
func (c *Configurator) Stats() handler.Snapshot {
	snap := c.stats.GetSnapshot()
	if h := c.active.Load(); h != nil {
		active := h.Stats()
		for l, n := range active.FilteredTotal {
			snap.FilteredTotal[l] += n
		}
		snap.FailedTotal += active.FailedTotal
		snap.ProcessedTotal += active.ProcessedTotal
	}
	return snap
}

// Close deactivates the current sink.
func (c *Configurator) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev := c.active.Swap(nil); prev != nil {
		return c.retire(prev)
	}
	return nil
}
