// Package logger is the public API of logshim. Most applications only
// need this package and sink.
//
// A Logger is immutable after construction: fields, channel, level and
// handler are set once via the Builder and never modified, which makes
// Logger safe for concurrent use without locking on the read path.
//
// The package default Logger sends every record to sink.Default(), with
// caller capture enabled. The package-level functions Info, Error, ...
// delegate to it, so a program only has to configure the sink once:
//
//	if err := sink.Configure(sink.WithJSONFormat(true)); err != nil {
//	    panic(err)
//	}
//	logger.Info("ready", logger.Int("port", 8080))
//
// Records are attributed to a channel with Named. Channels are dotted
// paths, and the sink suppresses noisy third-party channels by name:
//
//	s3log := logger.Named("botocore")
//	s3log.Warn("retrying") // dropped, only fatal passes for botocore
//
// Level checks happen before any allocation. When the handler implements
// handler.LevelEnabler, the channel and sink thresholds are consulted
// before the entry is built.
//
// Errors returned by the handler (unknown severity, unserializable field,
// failed write) drop the record and are reported through the Builder's
// error handler, which defaults to a one-line message on stderr.
package logger
