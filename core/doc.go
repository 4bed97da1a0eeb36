// Package core defines the record types shared by every logshim package.
//
// It provides the Level type with its closed set of severity ranks and
// their lowercase wire names, the Entry type that represents a single log
// record, the Field type for ordered structured key-value pairs, and
// CallerInfo with the helpers that derive the short caller location,
// function name and package path used by the formatters.
//
// Entry objects are pooled via sync.Pool. Callers get an Entry with
// GetEntry and return it with PutEntry once the handler has consumed it.
// The pool pre-allocates the Fields slice with capacity 8, which covers
// most log calls without triggering a slice growth.
//
// Entries never carry goroutine or process identifiers; a record is fully
// described by its time, level, channel, message, fields and caller.
package core
