// Package sloghandler bridges log/slog into logshim. Records created with
// a *slog.Logger are converted to core entries on a fixed channel and
// routed through any handler.Handler, typically the sink configurator:
//
//	slog.SetDefault(slog.New(sloghandler.NewSlogHandler(
//	    sink.DefaultHandler(), "app", core.DebugLevel)))
//
// Levels at or above LevelFatal map to fatal. Group attributes are
// flattened into dotted keys.
package sloghandler
