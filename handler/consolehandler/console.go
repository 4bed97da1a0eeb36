package consolehandler

import (
	"bytes"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/philipp01105/logshim/core"
	"github.com/philipp01105/logshim/formatter"
	"github.com/philipp01105/logshim/handler"
)

var _ handler.StatsProvider = (*ConsoleHandler)(nil)

// ErrClosed is returned by Handle after Close.
var ErrClosed = errors.New("consolehandler: handler closed")

// isConcurrentSafeWriter returns true if the writer is known to be safe for
// concurrent Write calls, allowing the handler to skip write-level locking.
func isConcurrentSafeWriter(w io.Writer) bool {
	if w == io.Discard {
		return true
	}
	_, ok := w.(*os.File)
	return ok
}

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: JSONFormatter)
	Formatter formatter.Formatter
	// MinLevel drops entries below this level (default: DebugLevel)
	MinLevel core.Level
	// ConcurrentWriter indicates the Writer supports concurrent Write calls.
	// Automatically detected for io.Discard and *os.File.
	ConcurrentWriter bool
}

// applyConsoleDefaults fills in zero-value fields with defaults.
func applyConsoleDefaults(cfg *ConsoleConfig) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewJSONFormatter(formatter.Config{})
	}
}

// ConsoleHandler writes one formatted line per entry.
type ConsoleHandler struct {
	writer          io.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	minLevel        core.Level
	concurrentSafe  bool
	stats           *handler.Stats
	mu              sync.Mutex // serializes writes for writers that need it
	bufPool         sync.Pool
	closed          atomic.Bool
}

// NewConsoleHandler creates a new console handler.
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	applyConsoleDefaults(&cfg)

	h := &ConsoleHandler{
		writer:         cfg.Writer,
		formatter:      cfg.Formatter,
		minLevel:       cfg.MinLevel,
		concurrentSafe: cfg.ConcurrentWriter || isConcurrentSafeWriter(cfg.Writer),
		stats:          handler.NewStats(),
	}

	// Cache BufferFormatter to format straight into the pooled line buffer
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	h.bufPool.New = func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	}

	return h
}

// Enabled reports whether entries at level pass the minimum level. Unknown
// levels are enabled so that Handle can reject them.
func (h *ConsoleHandler) Enabled(_ string, level core.Level) bool {
	return !level.Valid() || level >= h.minLevel
}

// Handle formats the entry and writes it followed by a newline.
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	if h.closed.Load() {
		return ErrClosed
	}
	if !entry.Level.Valid() {
		h.stats.IncrementFailed()
		return errors.Wrapf(core.ErrUnknownSeverity, "consolehandler: level %d", entry.Level)
	}
	if entry.Level < h.minLevel {
		h.stats.IncrementFiltered(entry.Level)
		return nil
	}

	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer h.putBuffer(buf)

	if err := h.format(entry, buf); err != nil {
		h.stats.IncrementFailed()
		return err
	}
	buf.WriteByte('\n')

	var err error
	if h.concurrentSafe {
		_, err = h.writer.Write(buf.Bytes())
	} else {
		h.mu.Lock()
		_, err = h.writer.Write(buf.Bytes())
		h.mu.Unlock()
	}

	if err != nil {
		h.stats.IncrementFailed()
		return err
	}
	h.stats.IncrementProcessed()
	return nil
}

func (h *ConsoleHandler) format(entry *core.Entry, buf *bytes.Buffer) error {
	if h.bufferFormatter != nil {
		return h.bufferFormatter.FormatEntry(entry, buf)
	}
	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

func (h *ConsoleHandler) putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 {
		return
	}
	h.bufPool.Put(buf)
}

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close stops the handler. The writer is not closed; it usually is one
// of the process's standard streams.
func (h *ConsoleHandler) Close() error {
	h.closed.Store(true)
	return nil
}
