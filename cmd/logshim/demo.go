package main

import (
	"errors"
	"log/slog"
	"time"

	"go.uber.org/zap"

	"github.com/philipp01105/logshim/core"
	"github.com/philipp01105/logshim/handler"
	"github.com/philipp01105/logshim/handler/sloghandler"
	"github.com/philipp01105/logshim/handler/zaphandler"
	"github.com/philipp01105/logshim/logger"
	"github.com/philipp01105/logshim/sink"
)

func runDemo(args []string) error {
	if err := loadConfig("demo", args); err != nil {
		return err
	}

	log := logger.Named("demo").With(logger.String("run", time.Now().Format("150405")))
	log.Debug("debug records only show in text mode")
	log.Info("service started", logger.Int("port", 8080), logger.Bool("tls", false))
	log.Warn("cache miss ratio high", logger.Float64("ratio", 0.42))
	log.Error("upstream failed", logger.Err(errors.New("connection refused")))
	log.Info("extras may override reserved keys", logger.String("msg", "overridden"))
	log.Log(logger.FatalLevel, "fatal records never exit through Log")

	// Third-party channels only pass fatal records.
	noisy := logger.Named("urllib3.connectionpool")
	noisy.Warn("retrying connection")
	noisy.Log(logger.FatalLevel, "connection pool exhausted")

	slog.New(sloghandler.NewSlogHandler(sink.DefaultHandler(), "demo.slog", core.DebugLevel)).
		Info("from log/slog", "user", "alice")

	z := zap.New(zaphandler.NewCore(sink.DefaultHandler(), "demo"), zap.AddCaller())
	z.Named("zap").Info("from zap", zap.Duration("elapsed", 1500*time.Millisecond))
	z.Named("botocore").Error("suppressed zap record")

	if snap, ok := handler.StatsOf(sink.DefaultHandler()); ok {
		var filtered uint64
		for _, n := range snap.FilteredTotal {
			filtered += n
		}
		log.Info("demo finished",
			logger.Int64("written", int64(snap.ProcessedTotal)),
			logger.Int64("filtered", int64(filtered)),
		)
	}
	return nil
}
