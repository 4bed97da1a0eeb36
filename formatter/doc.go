// Package formatter defines how log entries are serialized into a single
// output line.
//
// JSONFormatter produces one compact JSON object per entry with the keys
// level, time, caller and msg followed by the entry's fields in insertion
// order. A field whose key was already written replaces the earlier value
// in place, so the output never holds duplicate keys. TextFormatter renders
// the developer template
//
//	INFO     | app/api:(*Server).Serve:42 - listening - {port=8080}
//
// optionally wrapped in ANSI colors per level.
//
// Neither formatter appends a line terminator; the handler that owns the
// output stream does. Both use a pooled bytes.Buffer internally; buffers
// larger than 64 KiB are not returned to the pool to prevent a single large
// log line from permanently inflating memory usage.
package formatter
