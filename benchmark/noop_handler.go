// Package benchmark compares the cost of logging through logshim's own
// API with the same records arriving through the zap, logrus, zerolog and
// slog bridges, and with those libraries writing on their own.
package benchmark

import (
	"io"

	"github.com/philipp01105/logshim/core"
	"github.com/philipp01105/logshim/formatter"
	"github.com/philipp01105/logshim/handler"
	"github.com/philipp01105/logshim/handler/consolehandler"
)

type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) Handle(e *core.Entry) error {
	_ = len(e.Message)
	return nil
}

func (h *noopHandler) Close() error {
	return nil
}

// newDiscardHandler formats every record as JSON and throws the bytes away.
func newDiscardHandler() handler.Handler {
	return consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:           io.Discard,
		Formatter:        formatter.NewJSONFormatter(formatter.Config{}),
		ConcurrentWriter: true,
	})
}
