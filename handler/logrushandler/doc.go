// Package logrushandler bridges github.com/sirupsen/logrus into logshim
// through a logrus.Hook. Entries fired on the hook are converted and sent
// to a handler.Handler; the logrus output itself is usually discarded.
//
// A "channel" data field selects the channel per entry, which lets
// existing logrus call sites opt into third-party suppression:
//
//	log := logrushandler.NewLogger(sink.DefaultHandler(), "app")
//	log.WithField("channel", "boto3").Warn("dropped by the sink")
package logrushandler
