// Package consolehandler provides the console output handler that writes
// formatted log entries to any io.Writer (default: os.Stdout).
//
// Each entry is formatted into a pooled buffer, terminated with a newline
// and written with a single Write call, so concurrent loggers never
// interleave partial lines. Entries below the configured minimum level are
// counted as filtered and never formatted.
package consolehandler
