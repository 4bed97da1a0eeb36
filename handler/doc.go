// Package handler provides the Handler interface and the small set of
// companion interfaces that connect loggers, sinks and bridges.
//
// A Handler receives fully populated entries and is responsible for
// formatting and writing them. The sink configurator is itself a Handler
// that forwards to whichever console handler is currently installed.
//
// LevelEnabler lets producers ask, before building an entry, whether a
// record at a given level on a given channel would be written at all.
// Loggers and the bridges for log/slog, zap, logrus and zerolog consult
// it so suppressed channels cost only a lookup.
//
// Handlers track processed, filtered and failed counts via the Stats type,
// which can be queried at runtime through StatsProvider.
//
// Sub-packages:
//
//   - consolehandler writes one formatted line per entry to an io.Writer.
//   - sloghandler, zaphandler, logrushandler and zerologhandler adapt
//     other logging libraries onto a Handler.
package handler
