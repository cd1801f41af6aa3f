package core

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Logger is the leveled logging contract threaded through the generation
// pipeline. Arguments are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger discards all log output. It is the default wherever a Logger is
// optional.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// WriterLogger renders "LEVEL msg key=value ..." lines to a writer.
type WriterLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterLogger constructs a logger writing formatted lines to w.
func NewWriterLogger(w io.Writer) *WriterLogger {
	return &WriterLogger{w: w}
}

func (l *WriterLogger) emit(level, msg string, args []any) {
	b := &strings.Builder{}
	b.WriteString(level)
	b.WriteString(" ")
	b.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(b, " %v=%v", args[i], args[i+1])
	}
	if len(args)%2 == 1 {
		fmt.Fprintf(b, " %v", args[len(args)-1])
	}
	b.WriteString("\n")
	l.mu.Lock()
	_, _ = io.WriteString(l.w, b.String())
	l.mu.Unlock()
}

func (l *WriterLogger) Debug(msg string, args ...any) { l.emit("DEBUG", msg, args) }
func (l *WriterLogger) Info(msg string, args ...any)  { l.emit("INFO", msg, args) }
func (l *WriterLogger) Warn(msg string, args ...any)  { l.emit("WARN", msg, args) }
func (l *WriterLogger) Error(msg string, args ...any) { l.emit("ERROR", msg, args) }
