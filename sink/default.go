package sink

import (
	"sync/atomic"

	"github.com/philipp01105/logshim/core"
	"github.com/philipp01105/logshim/handler"
)

var defaultConfigurator atomic.Pointer[Configurator]

func init() {
	// Until the application configures output, behave like a development
	// console: every level, human-readable, on stderr.
	c := New()
	if err := c.Configure(WithJSONFormat(false)); err != nil {
		panic(err)
	}
	defaultConfigurator.Store(c)
}

// Default returns the process configurator.
func Default() *Configurator {
	return defaultConfigurator.Load()
}

// SetDefault replaces the process configurator.
func SetDefault(c *Configurator) {
	defaultConfigurator.Store(c)
}

// Configure reconfigures the process configurator.
func Configure(opts ...Option) error {
	return Default().Configure(opts...)
}

// DefaultHandler returns a Handler that always forwards to the current
// Default configurator, including after SetDefault.
func DefaultHandler() handler.Handler {
	return defaultHandler{}
}

type defaultHandler struct{}

func (defaultHandler) Handle(entry *core.Entry) error {
	return Default().Handle(entry)
}

func (defaultHandler) Enabled(channel string, level core.Level) bool {
	return Default().Enabled(channel, level)
}

func (defaultHandler) Stats() handler.Snapshot {
	return Default().Stats()
}

func (defaultHandler) Close() error {
	return Default().Close()
}
