package core

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-stack/stack"
)

// Entry represents a log entry with all its metadata
type Entry struct {
	Time    time.Time
	Level   Level
	Channel string
	Message string
	Fields  []Field
	Caller  CallerInfo
}

// CallerInfo contains information about the caller
type CallerInfo struct {
	File     string
	Line     int
	Function string
	Defined  bool
}

// Location returns the last two path segments of the file joined with
// the line number, e.g. "handler/console.go:42".
func (c CallerInfo) Location() string {
	file := c.File
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		if j := strings.LastIndexByte(file[:i], '/'); j >= 0 {
			file = file[j+1:]
		}
	}
	return file + ":" + strconv.Itoa(c.Line)
}

// FuncName returns the function name without its package path,
// e.g. "(*Server).Serve".
func (c CallerInfo) FuncName() string {
	fn := c.Function
	if i := strings.LastIndexByte(fn, '/'); i >= 0 {
		fn = fn[i+1:]
	}
	if i := strings.IndexByte(fn, '.'); i >= 0 {
		return fn[i+1:]
	}
	return fn
}

// Package returns the import path of the function's package.
func (c CallerInfo) Package() string {
	fn := c.Function
	slash := strings.LastIndexByte(fn, '/')
	if i := strings.IndexByte(fn[slash+1:], '.'); i >= 0 {
		return fn[:slash+1+i]
	}
	return fn
}

// entryPool is a pool of Entry objects to reduce allocations
var entryPool = sync.Pool{
	New: func() interface{} {
		return &Entry{
			Fields: make([]Field, 0, 8), // Pre-allocate for 8 fields
		}
	},
}

// GetEntry retrieves an Entry from the pool
func GetEntry() *Entry {
	e := entryPool.Get().(*Entry)
	e.Time = time.Now()
	e.Fields = e.Fields[:0]
	e.Caller = CallerInfo{}
	e.Channel = ""
	return e
}

// PutEntry returns an Entry to the pool
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	// Re-slice to zero length; GC handles reference cleanup
	e.Fields = e.Fields[:0]
	e.Message = ""
	e.Channel = ""
	e.Caller = CallerInfo{}
	entryPool.Put(e)
}

// GetCaller retrieves caller information. A skip of 0 identifies the
// function calling GetCaller.
func GetCaller(skip int) CallerInfo {
	frame := stack.Caller(skip + 1).Frame()
	if frame.File == "" {
		return CallerInfo{}
	}

	return CallerInfo{
		File:     frame.File,
		Line:     frame.Line,
		Function: frame.Function,
		Defined:  true,
	}
}

// CallerFromPC resolves a program counter, as recorded by log/slog, into
// caller information. A zero pc yields an undefined caller.
func CallerFromPC(pc uintptr) CallerInfo {
	if pc == 0 {
		return CallerInfo{}
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return CallerInfo{}
	}
	return CallerInfo{
		File:     frame.File,
		Line:     frame.Line,
		Function: frame.Function,
		Defined:  true,
	}
}
