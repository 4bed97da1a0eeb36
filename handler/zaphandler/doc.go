// Package zaphandler bridges go.uber.org/zap into logshim. NewCore returns
// a zapcore.Core, so an existing *zap.Logger can be pointed at the sink:
//
//	log := zap.New(zaphandler.NewCore(sink.DefaultHandler(), "app"), zap.AddCaller())
//	log.Named("db").Info("connected", zap.String("dsn", dsn))
//
// zap logger names are appended to the core's channel, so the sink
// suppresses a zap logger named "urllib3" like any other channel.
package zaphandler
