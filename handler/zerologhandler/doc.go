// Package zerologhandler bridges github.com/rs/zerolog into logshim.
// Writer is a zerolog.LevelWriter that parses each JSON event and sends
// it to a handler.Handler, so zerolog call sites share the sink's format
// and channel suppression.
package zerologhandler
